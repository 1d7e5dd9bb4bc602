// Package landing serves the public marketing page: static sections, the
// deed-economy simulator and the lead capture form. The fee math lives
// entirely in the remote API; this app only formats what comes back.
package landing

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"pratico-web/internal/adminapi"
	"pratico-web/internal/brl"
	"pratico-web/internal/config"
	"pratico-web/internal/webutil"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ufs lists every Brazilian state the simulator offers.
var ufs = []string{
	"AC", "AL", "AM", "AP", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG",
	"PA", "PB", "PE", "PR", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SE", "SP", "TO",
}

const (
	whatsAppURL = "https://wa.me/5522997303566"
	adminURL    = "https://emolumentos-brasil.vercel.app"
)

type Server struct {
	cfg  *config.Config
	api  adminapi.Client
	log  logrus.FieldLogger
	tmpl *template.Template
}

func New(cfg *config.Config, api adminapi.Client, log logrus.FieldLogger) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"brl": brl.Format,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, api: api, log: log, tmpl: tmpl}, nil
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(webutil.RequestLogger(s.log))
	r.HandleFunc("/", s.home).Methods(http.MethodGet)
	r.HandleFunc("/simulate", s.simulate).Methods(http.MethodPost)
	r.HandleFunc("/leads", s.createLead).Methods(http.MethodPost)
	return r
}

type simState struct {
	UF     string
	Value  string
	Status string
	Result *adminapi.EconomyResult
}

type leadState struct {
	Name    string
	Phone   string
	Email   string
	Profile string
	Message string
	Status  string
}

type pageData struct {
	UFs         []string
	WhatsAppURL string
	AdminURL    string
	Sim         simState
	Lead        leadState
}

func defaultPage() pageData {
	return pageData{
		UFs:         ufs,
		WhatsAppURL: whatsAppURL,
		AdminURL:    adminURL,
		Sim:         simState{UF: "SP", Value: "500000"},
		Lead:        leadState{Profile: "broker"},
	}
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	webutil.Render(w, s.log, s.tmpl, "landing.html", data)
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, defaultPage())
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	data := defaultPage()
	data.Sim.UF = r.FormValue("uf")
	data.Sim.Value = r.FormValue("value")

	value, err := brl.Parse(data.Sim.Value)
	if err != nil {
		data.Sim.Status = "Erro: valor inválido"
		s.render(w, data)
		return
	}
	result, resp, err := s.api.DeedEconomy(r.Context(), data.Sim.UF, value)
	switch {
	case err != nil:
		data.Sim.Status = "Erro: " + err.Error()
	case !resp.OK:
		data.Sim.Status = "Erro: " + resp.BodyText()
	default:
		data.Sim.Result = &result
		data.Sim.Status = "OK"
	}
	s.render(w, data)
}

func (s *Server) createLead(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	data := defaultPage()
	submitted := leadState{
		Name:    r.FormValue("name"),
		Phone:   r.FormValue("phone"),
		Email:   r.FormValue("email"),
		Profile: r.FormValue("profile"),
		Message: r.FormValue("message"),
	}

	resp, err := s.api.CreateLead(r.Context(), adminapi.Lead{
		Name:    submitted.Name,
		Email:   submitted.Email,
		Phone:   submitted.Phone,
		Profile: submitted.Profile,
		Message: submitted.Message,
		Consent: true,
	})
	switch {
	case err != nil:
		submitted.Status = "Erro: " + err.Error()
		data.Lead = submitted
	case !resp.OK:
		submitted.Status = "Erro: " + resp.BodyText()
		data.Lead = submitted
	default:
		// fields reset on success, only the confirmation remains
		data.Lead.Status = "Recebido! Vamos te chamar no WhatsApp."
	}
	s.render(w, data)
}
