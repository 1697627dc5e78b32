package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sekarsister/pdrdash/internal/analysis"
	"github.com/sekarsister/pdrdash/internal/pdr"
)

// WriteMarkdown writes the strategic report for v.
func WriteMarkdown(w io.Writer, v analysis.View, generated time.Time) error {
	var b strings.Builder

	b.WriteString("# TABLEAU DE BORD STRATÉGIQUE : RÉGION MARRAKECH-SAFI\n")
	b.WriteString("## Suivi de l'Exécution du Plan de Développement Régional (PDR)\n\n")

	b.WriteString("### 🔍 FILTRES\n\n")
	fmt.Fprintf(&b, "- **Provinces**: %s\n", selected(v.Provinces, v.Selection.Provinces))
	fmt.Fprintf(&b, "- **Secteurs**: %s\n", selected(v.Sectors, v.Selection.Sectors))

	b.WriteString("\n### 📊 INDICATEURS CLÉS\n\n")
	fmt.Fprintf(&b, "- **Budget Engagé**: %s (%s)\n", pdr.FormatMDH(v.TotalBudget), pdr.FormatDH(v.TotalBudget))
	fmt.Fprintf(&b, "- **Projets Actifs**: %d\n", v.Count)
	fmt.Fprintf(&b, "- **Projets en Retard**: %d\n", v.DelayedCount)
	fmt.Fprintf(&b, "- **Taux d'Achèvement Moyen**: %s\n", pdr.FormatPercent(v.AvgProgress, v.HasProgress))

	b.WriteString("\n### 🚨 ALERTES CRITIQUES\n\n")
	if len(v.Critical) == 0 {
		b.WriteString("Aucun projet critique.\n")
	} else {
		b.WriteString("| Province | Intitulé | Statut | Budget (DH) |\n")
		b.WriteString("|----------|----------|--------|-------------|\n")
		for _, p := range v.Critical {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", cell(p.Province), cell(p.Title), cell(p.Status), pdr.FormatDH(p.Budget))
		}
	}

	b.WriteString("\n### 💰 RÉPARTITION BUDGÉTAIRE PAR PROVINCE\n\n")
	if len(v.BudgetByProvince) == 0 {
		b.WriteString(pdr.NoData + ".\n")
	} else {
		b.WriteString("| Province | Budget (DH) |\n")
		b.WriteString("|----------|-------------|\n")
		for i := len(v.BudgetByProvince) - 1; i >= 0; i-- {
			a := v.BudgetByProvince[i]
			fmt.Fprintf(&b, "| %s | %s |\n", cell(a.Label), pdr.FormatDH(a.Value))
		}
	}

	b.WriteString("\n### 🏗️ ÉTAT D'AVANCEMENT DES PROJETS\n\n")
	if len(v.StatusDistribution) == 0 {
		b.WriteString(pdr.NoData + ".\n")
	} else {
		b.WriteString("| Statut | Projets | Part |\n")
		b.WriteString("|--------|---------|------|\n")
		for _, s := range v.StatusDistribution {
			share := 100 * float64(s.Count) / float64(v.Count)
			fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", cell(s.Label), s.Count, share)
		}
	}

	b.WriteString("\n### 📋 LISTE DÉTAILLÉE DES PROJETS\n\n")
	if v.Subset.Len() == 0 {
		b.WriteString(pdr.NoData + ".\n")
	} else {
		b.WriteString("| Province | Secteur | Intitulé | Budget (DH) | Statut | Avancement |\n")
		b.WriteString("|----------|---------|----------|-------------|--------|------------|\n")
		for _, p := range v.Subset.Projects {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %.0f%% |\n",
				cell(p.Province), cell(p.Sector), cell(p.Title), pdr.FormatDH(p.Budget), cell(p.Status), p.Progress)
		}
	}

	fmt.Fprintf(&b, "\n---\n*Généré par pdrdash le %s*\n", generated.Format("02/01/2006 15:04"))

	_, err := io.WriteString(w, b.String())
	return err
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// cell makes s safe inside a Markdown table cell.
func cell(s string) string {
	return cellEscaper.Replace(s)
}

// selected lists the options present in set, in option order.
func selected(options []string, set analysis.Set) string {
	var picked []string
	for _, o := range options {
		if set.Has(o) {
			picked = append(picked, o)
		}
	}
	if len(picked) == 0 {
		return "(aucune)"
	}
	return strings.Join(picked, ", ")
}
