// Package admin serves the internal console: login, emoluments tables,
// per-table bracket editing and spreadsheet import. Every page is a thin
// rendering of one or two remote API calls.
package admin

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"pratico-web/internal/adminapi"
	"pratico-web/internal/bracketcheck"
	"pratico-web/internal/config"
	"pratico-web/internal/webutil"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	cfg  *config.Config
	api  adminapi.Client
	log  logrus.FieldLogger
	tmpl *template.Template
}

func New(cfg *config.Config, api adminapi.Client, log logrus.FieldLogger) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, api: api, log: log, tmpl: tmpl}, nil
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(webutil.RequestLogger(s.log))
	r.HandleFunc("/", s.home).Methods(http.MethodGet)
	r.HandleFunc("/login", s.loginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/emoluments", s.tables).Methods(http.MethodGet)
	r.HandleFunc("/emoluments/import", s.importPage).Methods(http.MethodGet)
	r.HandleFunc("/emoluments/import", s.importSubmit).Methods(http.MethodPost)
	r.HandleFunc("/emoluments/{tableId}", s.tableDetail).Methods(http.MethodGet)
	r.HandleFunc("/emoluments/{tableId}/brackets/{bracketId}", s.saveBracket).Methods(http.MethodPost)
	return r
}

// token reads the persisted bearer token. The login page is the only writer.
func (s *Server) token(r *http.Request) string {
	c, err := r.Cookie(s.cfg.TokenCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	webutil.Render(w, s.log, s.tmpl, "home.html", nil)
}

type loginData struct {
	Email  string
	Status string
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	webutil.Render(w, s.log, s.tmpl, "login.html", loginData{})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	data := loginData{Email: r.FormValue("email")}
	tok, resp, err := s.api.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	switch {
	case err != nil:
		data.Status = "Erro: " + err.Error()
	case !resp.OK:
		data.Status = "Erro: " + resp.BodyText()
	default:
		http.SetCookie(w, &http.Cookie{
			Name:     s.cfg.TokenCookie,
			Value:    tok.AccessToken,
			Path:     "/",
			HttpOnly: true,
		})
		data.Status = "OK! Token salvo no navegador."
	}
	webutil.Render(w, s.log, s.tmpl, "login.html", data)
}

type tablesData struct {
	Status string
	Tables []adminapi.FeeTable
}

func (s *Server) tables(w http.ResponseWriter, r *http.Request) {
	token := s.token(r)
	if token == "" {
		webutil.Render(w, s.log, s.tmpl, "tables.html", tablesData{Status: "Você precisa fazer login primeiro."})
		return
	}
	tables, resp, err := s.api.ListTables(r.Context(), token, "active")
	data := tablesData{}
	switch {
	case err != nil:
		data.Status = "Erro: " + err.Error()
	case !resp.OK:
		data.Status = "Erro: " + resp.BodyText()
	default:
		data.Tables = tables
		data.Status = "OK: " + strconv.Itoa(len(tables)) + " tabelas"
	}
	webutil.Render(w, s.log, s.tmpl, "tables.html", data)
}

type bracketRow struct {
	Bracket   adminapi.FeeBracket
	Editing   bool
	Msg       string
	RangeFrom string
	RangeTo   string
	Amount    string
	Active    bool
}

type detailData struct {
	TableID    string
	Table      *adminapi.FeeTable
	Status     string
	PolicyNote string
	Rows       []bracketRow
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// loadDetail keeps the console's two-step lookup: the API has no single-table
// endpoint, so the header metadata comes from filtering the full table list.
func (s *Server) loadDetail(ctx context.Context, token, tableID string) detailData {
	data := detailData{TableID: tableID, PolicyNote: s.policyNote()}
	tables, resp, err := s.api.ListTables(ctx, token, "")
	if err != nil {
		data.Status = "Erro tabelas: " + err.Error()
		return data
	}
	if !resp.OK {
		data.Status = "Erro tabelas: " + resp.BodyText()
		return data
	}
	for i := range tables {
		if tables[i].ID == tableID {
			data.Table = &tables[i]
			break
		}
	}
	brackets, resp, err := s.api.ListBrackets(ctx, token, tableID)
	if err != nil {
		data.Status = "Erro faixas: " + err.Error()
		return data
	}
	if !resp.OK {
		data.Status = "Erro faixas: " + resp.BodyText()
		return data
	}
	for _, b := range brackets {
		data.Rows = append(data.Rows, bracketRow{
			Bracket:   b,
			RangeFrom: fmtNum(b.RangeFrom),
			RangeTo:   fmtNum(b.RangeTo),
			Amount:    fmtNum(b.Amount),
			Active:    b.Active,
		})
	}
	data.Status = "OK"
	return data
}

func (s *Server) policyNote() string {
	if s.cfg.Policy() == bracketcheck.PolicyOff {
		return "(MVP: não valida sobreposição de faixas ainda.)"
	}
	return "(Validação de faixas: " + s.cfg.BracketPolicy + ".)"
}

func (s *Server) tableDetail(w http.ResponseWriter, r *http.Request) {
	tableID := mux.Vars(r)["tableId"]
	data := s.loadDetail(r.Context(), s.token(r), tableID)
	editID := r.URL.Query().Get("edit")
	for i := range data.Rows {
		if data.Rows[i].Bracket.ID == editID {
			data.Rows[i].Editing = true
		}
	}
	webutil.Render(w, s.log, s.tmpl, "table.html", data)
}

// editedRow is the submitted text state of the row being saved, carried back
// into the page when the save does not go through.
type editedRow struct {
	rangeFrom, rangeTo, amount string
	active                     bool
}

func (s *Server) renderEditError(w http.ResponseWriter, r *http.Request, tableID, bracketID, msg string, edit editedRow) {
	data := s.loadDetail(r.Context(), s.token(r), tableID)
	for i := range data.Rows {
		if data.Rows[i].Bracket.ID == bracketID {
			data.Rows[i].Editing = true
			data.Rows[i].Msg = msg
			data.Rows[i].RangeFrom = edit.rangeFrom
			data.Rows[i].RangeTo = edit.rangeTo
			data.Rows[i].Amount = edit.amount
			data.Rows[i].Active = edit.active
		}
	}
	webutil.Render(w, s.log, s.tmpl, "table.html", data)
}

func (s *Server) saveBracket(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tableID, bracketID := vars["tableId"], vars["bracketId"]
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	edit := editedRow{
		rangeFrom: r.FormValue("range_from"),
		rangeTo:   r.FormValue("range_to"),
		amount:    r.FormValue("amount"),
		active:    r.FormValue("active") != "",
	}
	token := s.token(r)

	rangeFrom, err1 := strconv.ParseFloat(edit.rangeFrom, 64)
	rangeTo, err2 := strconv.ParseFloat(edit.rangeTo, 64)
	amount, err3 := strconv.ParseFloat(edit.amount, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		s.renderEditError(w, r, tableID, bracketID, "Erro: valores numéricos inválidos", edit)
		return
	}

	if policy := s.cfg.Policy(); policy != bracketcheck.PolicyOff {
		siblings, resp, err := s.api.ListBrackets(r.Context(), token, tableID)
		if err != nil {
			s.renderEditError(w, r, tableID, bracketID, "Erro: "+err.Error(), edit)
			return
		}
		if !resp.OK {
			s.renderEditError(w, r, tableID, bracketID, "Erro: "+resp.BodyText(), edit)
			return
		}
		check := adminapi.FeeBracket{
			ID:        bracketID,
			RangeFrom: rangeFrom,
			RangeTo:   rangeTo,
			Amount:    amount,
			Active:    edit.active,
		}
		if err := bracketcheck.Check(policy, check, siblings); err != nil {
			s.renderEditError(w, r, tableID, bracketID, "Erro: "+err.Error(), edit)
			return
		}
	}

	resp, err := s.api.UpdateBracket(r.Context(), token, bracketID, adminapi.BracketUpdate{
		RangeFrom: rangeFrom,
		RangeTo:   rangeTo,
		Amount:    amount,
		Active:    edit.active,
	})
	if err != nil {
		s.renderEditError(w, r, tableID, bracketID, "Erro: "+err.Error(), edit)
		return
	}
	if !resp.OK {
		s.renderEditError(w, r, tableID, bracketID, "Erro: "+resp.BodyText(), edit)
		return
	}
	// Save succeeded: leave edit mode and reload the list through the server.
	http.Redirect(w, r, "/emoluments/"+tableID, http.StatusSeeOther)
}

type importData struct {
	Year   string
	Status string
}

func (s *Server) importPage(w http.ResponseWriter, r *http.Request) {
	webutil.Render(w, s.log, s.tmpl, "import.html", importData{Year: "2026"})
}

func (s *Server) importSubmit(w http.ResponseWriter, r *http.Request) {
	token := s.token(r)
	if token == "" {
		webutil.Render(w, s.log, s.tmpl, "import.html", importData{Year: "2026", Status: "Faça login primeiro."})
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	data := importData{Year: r.FormValue("year")}
	if data.Year == "" {
		data.Year = "2026"
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		data.Status = "Selecione um arquivo .xlsx"
		webutil.Render(w, s.log, s.tmpl, "import.html", data)
		return
	}
	defer file.Close()

	resp, err := s.api.ImportV5(r.Context(), token, data.Year, header.Filename, file)
	switch {
	case err != nil:
		data.Status = "Erro: " + err.Error()
	case !resp.OK:
		data.Status = "Erro: " + resp.BodyText()
	default:
		data.Status = "OK: " + resp.BodyText()
	}
	webutil.Render(w, s.log, s.tmpl, "import.html", data)
}
