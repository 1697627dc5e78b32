package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sekarsister/pdrdash/internal/analysis"
	"github.com/sekarsister/pdrdash/internal/chart"
	"github.com/sekarsister/pdrdash/internal/geo"
	"github.com/sekarsister/pdrdash/internal/pdr"
	"github.com/sekarsister/pdrdash/internal/workbook"
)

const (
	// MissingSourceMessage is shown instead of a dashboard when the project
	// file does not exist yet.
	MissingSourceMessage = "⚠️ Veuillez générer le fichier CSV d'abord."

	filterMarker = "f"
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type kpi struct {
	Label string
	Value string
	Hint  string
}

type chartLink struct {
	Title string
	URL   template.URL
}

type option struct {
	Value   string
	Checked bool
}

// layout describes one dashboard page.
type layout struct {
	Path     string
	Title    string
	Subtitle string
	Alerts   bool
	Geo      bool // map chart, GeoJSON link and lat/lon columns
	KPIs     func(analysis.View) []kpi
	Charts   []chartLink
}

var strategic = layout{
	Path:     "/",
	Title:    "🗺️ Tableau de Bord Stratégique : Région Marrakech-Safi",
	Subtitle: "Suivi de l'Exécution du Plan de Développement Régional (PDR)",
	Alerts:   true,
	Geo:      true,
	KPIs: func(v analysis.View) []kpi {
		return []kpi{
			{Label: "💰 Budget Engagé", Value: pdr.FormatMDH(v.TotalBudget), Hint: "En Millions de DH"},
			{Label: "🏗️ Projets Actifs", Value: fmt.Sprint(v.Count)},
			{Label: "⚠️ Projets en Retard", Value: fmt.Sprint(v.DelayedCount)},
			{Label: "✅ Taux d'Achèvement Moyen", Value: pdr.FormatPercent(v.AvgProgress, v.HasProgress)},
		}
	},
	Charts: []chartLink{
		{Title: "📍 Carte Territoriale des Projets", URL: template.URL(chart.Map)},
		{Title: "📊 Répartition Budgétaire par Province", URL: template.URL(chart.Budget)},
		{Title: "📈 Avancement par Secteur", URL: template.URL(chart.Progress)},
		{Title: "🏗️ État d'Avancement des Projets", URL: template.URL(chart.Status)},
	},
}

var summary = layout{
	Path:  "/synthese",
	Title: "📊 Suivi du PDR - Région Marrakech-Safi",
	KPIs: func(v analysis.View) []kpi {
		return []kpi{
			{Label: "Budget Total Investi", Value: pdr.FormatDH(v.TotalBudget)},
			{Label: "Nombre de Projets", Value: fmt.Sprint(v.Count)},
			{Label: "Taux d'Avancement Moyen", Value: pdr.FormatPercent(v.AvgProgress, v.HasProgress)},
		}
	},
	Charts: []chartLink{
		{Title: "💰 Disparités Budgétaires par Province", URL: template.URL(chart.Budget)},
		{Title: "🏗️ État d'Avancement des Projets", URL: template.URL(chart.Status)},
	},
}

type page struct {
	Layout    layout
	View      analysis.View
	KPIs      []kpi
	Charts    []chartLink
	Provinces []option
	Sectors   []option
	Query     template.URL
	Columns   []column
}

// column is a table column and its position in the export header.
type column struct {
	Name  string
	Index int
}

var templateFuncs = template.FuncMap{
	"dh": pdr.FormatDH,
	"cell": func(p pdr.Project, i int, col string) string {
		return p.Cell(i, col)
	},
}

// selectionFrom reads the filter state from the query string. Without the
// form marker every province and sector is selected.
func selectionFrom(c *gin.Context, t *pdr.Table) analysis.Selection {
	if c.Query(filterMarker) != "1" {
		return analysis.AllOf(t)
	}
	return analysis.Selection{
		Provinces: analysis.NewSet(c.QueryArray("province")...),
		Sectors:   analysis.NewSet(c.QueryArray("secteur")...),
	}
}

func queryOf(sel analysis.Selection, t *pdr.Table) url.Values {
	q := url.Values{}
	q.Set(filterMarker, "1")
	for _, p := range analysis.Provinces(t) {
		if sel.Provinces.Has(p) {
			q.Add("province", p)
		}
	}
	for _, s := range analysis.Sectors(t) {
		if sel.Sectors.Has(s) {
			q.Add("secteur", s)
		}
	}
	return q
}

func options(values []string, set analysis.Set) []option {
	opts := make([]option, len(values))
	for i, v := range values {
		opts[i] = option{Value: v, Checked: set.Has(v)}
	}
	return opts
}

// view loads the table and runs the pipeline for the request's filters.
// On failure the error response has already been written.
func (s *Server) view(c *gin.Context) (analysis.View, *pdr.Table, bool) {
	t, err := s.cache.Table()
	if err != nil {
		s.fail(c, err)
		return analysis.View{}, nil, false
	}
	return analysis.Build(t, selectionFrom(c, t), s.pipeline), t, true
}

func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, pdr.ErrMissingSource) {
		c.HTML(http.StatusServiceUnavailable, "error.tmpl", gin.H{"Message": MissingSourceMessage})
		c.Abort()
		return
	}
	_ = c.Error(err)
	s.log.Error("loading projects", zap.Error(err))
	c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": err.Error()})
	c.Abort()
}

func (s *Server) dashboard(l layout) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, t, ok := s.view(c)
		if !ok {
			return
		}
		query := queryOf(v.Selection, t).Encode()

		charts := make([]chartLink, len(l.Charts))
		for i, ch := range l.Charts {
			charts[i] = chartLink{
				Title: ch.Title,
				URL:   template.URL("/charts/" + string(ch.URL) + "?" + query),
			}
		}

		c.HTML(http.StatusOK, "dashboard.tmpl", page{
			Layout:    l,
			View:      v,
			KPIs:      l.KPIs(v),
			Charts:    charts,
			Provinces: options(v.Provinces, v.Selection.Provinces),
			Sectors:   options(v.Sectors, v.Selection.Sectors),
			Query:     template.URL(query),
			Columns:   tableColumns(v.Subset, l.Geo),
		})
	}
}

// tableColumns lists the columns shown in the project table. Without geo the
// coordinate columns are left out.
func tableColumns(t *pdr.Table, withGeo bool) []column {
	var cols []column
	for i, name := range pdr.ExportColumns(t) {
		if !withGeo && (name == pdr.ColLat || name == pdr.ColLon) {
			continue
		}
		cols = append(cols, column{Name: name, Index: i})
	}
	return cols
}

func (s *Server) chart(c *gin.Context) {
	v, _, ok := s.view(c)
	if !ok {
		return
	}
	name := c.Param("name")
	p, err := chart.Render(name, v, s.bounds)
	if errors.Is(err, chart.ErrUnknownChart) {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := chart.WriteSVG(&buf, p); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func attachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

func (s *Server) exportCSV(c *gin.Context) {
	v, _, ok := s.view(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := pdr.WriteCSV(&buf, v.Subset, s.delim); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	attachment(c, pdr.ExportFileName)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *Server) exportXLSX(c *gin.Context) {
	v, _, ok := s.view(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := workbook.Write(&buf, v); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	attachment(c, workbook.FileName)
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}

func (s *Server) geoJSON(c *gin.Context) {
	v, _, ok := s.view(c)
	if !ok {
		return
	}
	data, err := json.Marshal(geo.FeatureCollection(v.Subset))
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

func (s *Server) apiView(c *gin.Context) {
	t, err := s.cache.Table()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pdr.ErrMissingSource) {
			status = http.StatusServiceUnavailable
		} else {
			s.log.Error("loading projects", zap.Error(err))
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis.Build(t, selectionFrom(c, t), s.pipeline))
}

func (s *Server) reload(c *gin.Context) {
	s.cache.Reload()
	s.log.Info("project table reload requested")
	c.Redirect(http.StatusSeeOther, "/")
}
