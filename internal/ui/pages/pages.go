// Package pages holds the HTML pages. Each page is an html/template file
// rendered inside layout.html and exposed as a templ.Component.
package pages

import (
	"context"
	"embed"
	"html/template"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
	"github.com/templui/fileshare/internal/ctxkeys"
	"github.com/templui/fileshare/internal/flash"
	"github.com/templui/fileshare/internal/model"
	"github.com/templui/fileshare/internal/ui"
)

//go:embed templates/*.html
var templatesFS embed.FS

var funcs = template.FuncMap{
	"cn":         ui.Class,
	"alertClass": ui.AlertClass,
	"button":     ui.ButtonClass,
	"humanBytes": HumanBytes,
	"pathEscape": url.PathEscape,
	"itoa":       func(n int64) string { return strconv.FormatInt(n, 10) },
}

var (
	homeTmpl        = parse("home.html")
	loginTmpl       = parse("login.html")
	registerTmpl    = parse("register.html")
	notFoundTmpl    = parse("not_found.html")
	serverErrorTmpl = parse("error.html")
)

func parse(page string) *template.Template {
	return template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+page))
}

// Page is the data every page shares
type Page struct {
	Title     string
	AppName   string
	Nonce     string
	CSRFToken string
	Username  string
	Flashes   []flash.Message
}

// NewPage fills the shared page data from the request context
func NewPage(ctx context.Context, title string, flashes []flash.Message) Page {
	appName := "FileShare"
	if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
		appName = cfg.AppName
	}

	page := Page{
		Title:     title,
		AppName:   appName,
		Nonce:     templ.GetNonce(ctx),
		CSRFToken: ctxkeys.CSRFToken(ctx),
		Flashes:   flashes,
	}
	if identity := ctxkeys.Identity(ctx); identity != nil {
		page.Username = identity.Username
	}
	return page
}

type HomeData struct {
	Page
	Files         []*model.File
	MaxUploadSize int64
}

// AuthData backs the login and register forms. FormUsername refills the
// username field after a failed submit.
type AuthData struct {
	Page
	FormUsername string
}

func Home(data HomeData) templ.Component {
	return templ.FromGoHTML(homeTmpl, data)
}

func Login(data AuthData) templ.Component {
	return templ.FromGoHTML(loginTmpl, data)
}

func Register(data AuthData) templ.Component {
	return templ.FromGoHTML(registerTmpl, data)
}

func NotFound(data Page) templ.Component {
	return templ.FromGoHTML(notFoundTmpl, data)
}

func ServerError(data Page) templ.Component {
	return templ.FromGoHTML(serverErrorTmpl, data)
}

// HumanBytes formats n in binary units, e.g. "16 MiB"
func HumanBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
