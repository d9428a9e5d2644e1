package maintenance

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/language"
)

//go:embed templates/page.html.tmpl
var templates embed.FS

// PageStrings are the translated texts of the built-in page
type PageStrings struct {
	Title       string
	Heading     string
	Subheading  string
	Apology     string
	BeRightBack string
	Banner      string
}

var supportedLanguages = []language.Tag{
	language.English,
	language.Russian,
	language.Ukrainian,
	language.Polish,
}

var pageStrings = map[string]PageStrings{
	"en": {
		Title:       "%s - under maintenance",
		Heading:     "Website currently",
		Subheading:  "under maintenance",
		Apology:     "We apologize for the inconvenience.",
		BeRightBack: "We'll be right back. Thank you for your patience.",
		Banner:      "The site is under maintenance and will be available soon. We apologize for the inconvenience",
	},
	"ru": {
		Title:       "%s - на техническом обслуживании",
		Heading:     "Сайт сейчас",
		Subheading:  "на техническом обслуживании",
		Apology:     "Приносим извинения за неудобства.",
		BeRightBack: "Мы скоро вернёмся. Спасибо за терпение.",
		Banner:      "Сайт на техническом обслуживании и скоро будет доступен. Приносим извинения за неудобства",
	},
	"uk": {
		Title:       "%s - на технічному обслуговуванні",
		Heading:     "Сайт зараз",
		Subheading:  "на технічному обслуговуванні",
		Apology:     "Перепрошуємо за незручності.",
		BeRightBack: "Ми скоро повернемося. Дякуємо за терпіння.",
		Banner:      "Сайт на технічному обслуговуванні й незабаром буде доступний. Перепрошуємо за незручності",
	},
	"pl": {
		Title:       "%s - przerwa techniczna",
		Heading:     "Strona obecnie",
		Subheading:  "w trakcie konserwacji",
		Apology:     "Przepraszamy za niedogodności.",
		BeRightBack: "Wrócimy wkrótce. Dziękujemy za cierpliwość.",
		Banner:      "Strona jest w trakcie konserwacji i wkrótce będzie dostępna. Przepraszamy za niedogodności",
	},
}

type scroll struct {
	D int
	Y int
}

var scrolls = []scroll{{7, 40}, {-5, 840}, {3, 700}, {-5, 50}, {-25, 900}}

type pageData struct {
	Lang    string
	Title   string
	Strings PageStrings
	Banner  string
	Scrolls []scroll
}

// Page renders the maintenance response body
type Page struct {
	tmpl    *template.Template
	matcher language.Matcher
}

// NewPage parses the embedded template
func NewPage() *Page {
	return &Page{
		tmpl:    template.Must(template.ParseFS(templates, "templates/page.html.tmpl")),
		matcher: language.NewMatcher(supportedLanguages),
	}
}

// Language picks the page language from an Accept-Language header, english by default
func (p *Page) Language(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "en"
	}
	_, index, confidence := p.matcher.Match(tags...)
	if confidence == language.No {
		return "en"
	}
	base, _ := supportedLanguages[index].Base()
	return base.String()
}

// Body returns the custom html when configured, the built-in page otherwise
func (p *Page) Body(customHTML, siteName, acceptLanguage string) ([]byte, error) {
	if strings.TrimSpace(customHTML) != "" {
		return []byte(customHTML), nil
	}
	lang := p.Language(acceptLanguage)
	texts := pageStrings[lang]
	banner := strings.Repeat(texts.Banner+" - ", 2) + texts.Banner

	buf := &bytes.Buffer{}
	err := p.tmpl.Execute(buf, pageData{
		Lang:    lang,
		Title:   fmt.Sprintf(texts.Title, siteName),
		Strings: texts,
		Banner:  banner,
		Scrolls: scrolls,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
