package controller

import (
	"bytes"
	"html/template"
	"strings"

	"niche-picker-be/internal/dto"
	"niche-picker-be/internal/service"
	"niche-picker-be/internal/web"
	"niche-picker-be/pkg/selection"

	"github.com/gofiber/fiber/v2"
)

// formField is a hidden input of the picker form. Its presence marks the
// request as a form submit rather than a shared link.
const formField = "picker_form"

type IPageController interface {
	RegisterRoutes(r fiber.Router)
	Picker(ctx *fiber.Ctx) error
}

type pageController struct {
	taxonomy  service.ITaxonomyService
	selection service.ISelectionService
	baseURL   string
	tmpl      *template.Template
}

type pageNiche struct {
	Name    string
	Checked bool
}

type pageIndustry struct {
	Name     string
	Key      string
	Checked  bool
	Status   selection.Status
	Selected int
	Total    int
	Niches   []pageNiche
}

type pageData struct {
	FormField  string
	Industries []pageIndustry
	Rows       []selection.Row
	Empty      bool
	ShareURL   string
	JSONURL    string
	CSVURL     string
}

func NewPageController(taxonomy service.ITaxonomyService, selectionService service.ISelectionService, baseURL string) (IPageController, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	return &pageController{
		taxonomy:  taxonomy,
		selection: selectionService,
		baseURL:   strings.TrimRight(baseURL, "/"),
		tmpl:      tmpl,
	}, nil
}

func (c *pageController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Picker)
}

// Picker renders the host page for the selection in the query string.
// Submitting its form reloads the page with the new selection encoded.
func (c *pageController) Picker(ctx *fiber.Ctx) error {
	q := queryOf(ctx)
	var m *selection.Model
	if _, submitted := q[formField]; submitted {
		// The form lists every checked industry, with or without niches.
		m = selection.DecodeWithPolicy(q, selection.PolicyKeepListed)
	} else {
		m = c.selection.Decode(ctx.UserContext(), q)
	}
	view, err := c.selection.View(ctx.UserContext(), m)
	if err != nil {
		return err
	}
	tax, err := c.taxonomy.Get(ctx.UserContext())
	if err != nil {
		return err
	}

	summaries := make(map[string]dto.IndustrySummary, len(view.Summary.Industries))
	for _, s := range view.Summary.Industries {
		summaries[s.Industry] = s
	}

	data := pageData{
		FormField:  formField,
		Industries: make([]pageIndustry, 0, tax.Len()),
		Rows:       view.Rows,
		Empty:      view.Empty,
		ShareURL:   c.baseURL + "/" + view.ShareQuery,
		JSONURL:    "/api/selection/v1/export/json" + view.ShareQuery,
		CSVURL:     "/api/selection/v1/export/csv" + view.ShareQuery,
	}
	for _, ind := range tax.Industries {
		s, picked := summaries[ind.Name]
		item := pageIndustry{
			Name:     ind.Name,
			Key:      selection.NicheKey(ind.Name),
			Checked:  picked,
			Status:   s.Status,
			Selected: s.Selected,
			Total:    len(ind.Niches),
			Niches:   make([]pageNiche, 0, len(ind.Niches)),
		}
		for _, n := range ind.Niches {
			item.Niches = append(item.Niches, pageNiche{Name: n, Checked: m.HasNiche(ind.Name, n)})
		}
		data.Industries = append(data.Industries, item)
	}

	var buf bytes.Buffer
	if err := c.tmpl.ExecuteTemplate(&buf, "picker.html", data); err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Send(buf.Bytes())
}
