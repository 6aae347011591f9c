// Package report renders the two-page "Heart Passport" PDF.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Skufu/cardiocare/internal/cardio"
	"github.com/Skufu/cardiocare/internal/predictor"
)

const DefaultPatientName = "Valued Patient"

type rgb struct{ r, g, b int }

var (
	brandBlue  = rgb{37, 99, 235}
	mutedGray  = rgb{107, 114, 128}
	slate      = rgb{51, 65, 85}
	ink        = rgb{31, 41, 55}
	alertRed   = rgb{220, 38, 38}
	deepRed    = rgb{185, 28, 28}
	okGreen    = rgb{16, 185, 129}
	teal       = rgb{15, 118, 110}
	bandFill   = rgb{248, 250, 252}
	headerFill = rgb{243, 244, 246}
	rowFill    = rgb{252, 252, 252}
	stripeFill = rgb{250, 250, 252}
	white      = rgb{255, 255, 255}
	bodyGray   = rgb{75, 85, 99}
)

var levelLabels = []string{"Normal", "Above Normal", "High"}

// Assessment is everything the report lays out.
type Assessment struct {
	PatientName string
	Observation cardio.Observation
	Prediction  predictor.Prediction
	HeartAge    int
	Plan        []cardio.DayPlan
	IssuedAt    time.Time
}

// PatientName trims raw and substitutes the default for blank input.
func PatientName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return DefaultPatientName
	}
	return name
}

// Filename is the download name, e.g. jane_doe_Heart_Passport_20260102.pdf.
func Filename(patientName string, issued time.Time) string {
	safe := strings.ToLower(strings.ReplaceAll(patientName, " ", "_"))
	return fmt.Sprintf("%s_Heart_Passport_%s.pdf", safe, issued.Format("20060102"))
}

func levelLabel(field string, level int) (string, error) {
	if level < 1 || level > len(levelLabels) {
		return "", fmt.Errorf("%s level %d out of range 1-%d", field, level, len(levelLabels))
	}
	return levelLabels[level-1], nil
}

type writer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w *writer) font(style string, size float64) {
	w.pdf.SetFont("Helvetica", style, size)
}

func (w *writer) text(c rgb) {
	w.pdf.SetTextColor(c.r, c.g, c.b)
}

func (w *writer) fill(c rgb) {
	w.pdf.SetFillColor(c.r, c.g, c.b)
}

func (w *writer) cell(width, height float64, txt string, ln int, align string, fill bool) {
	w.pdf.CellFormat(width, height, w.tr(txt), "", ln, align, fill, 0, "")
}

func (w *writer) boxed(width, height float64, txt string, ln int, fill bool) {
	w.pdf.CellFormat(width, height, w.tr(txt), "1", ln, "", fill, 0, "")
}

func (w *writer) para(height float64, txt string) {
	w.pdf.MultiCell(0, height, w.tr(txt), "", "", false)
}

// Render writes the PDF to out.
func Render(out io.Writer, a Assessment) error {
	chol, err := levelLabel("cholesterol", a.Observation.Cholesterol)
	if err != nil {
		return err
	}
	gluc, err := levelLabel("glucose", a.Observation.Glucose)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	w := &writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	summaryPage(w, a, chol, gluc)
	planPage(w, a)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(out)
}

func summaryPage(w *writer, a Assessment, chol, gluc string) {
	o := a.Observation
	name := a.PatientName
	w.pdf.AddPage()

	w.font("B", 24)
	w.text(brandBlue)
	w.cell(0, 20, "Global Heart Passport", 1, "C", false)

	w.font("", 10)
	w.text(mutedGray)
	w.cell(0, 10, fmt.Sprintf("Issued on: %s | CardioCare AI Diagnostic", a.IssuedAt.Format("January 02, 2006")), 1, "C", false)
	w.pdf.Ln(10)

	w.fill(bandFill)
	w.font("B", 12)
	w.text(slate)
	w.cell(0, 12, " PATIENT NAME: "+strings.ToUpper(name), 1, "", true)
	w.pdf.Ln(2)

	sectionHeader(w, " [1] CLINICAL RISK ASSESSMENT SUMMARY")

	w.font("B", 12)
	w.cell(45, 10, "Chronological Age :", 0, "", false)
	w.cell(15, 10, strconv.Itoa(int(o.Age)), 0, "", false)
	w.cell(45, 10, "  Functional Heart Age : ", 0, "", false)

	gap := cardio.AgeGap(a.HeartAge, o)
	var ageText string
	switch {
	case gap > 0:
		w.text(alertRed)
		ageText = fmt.Sprintf("%d Yrs (+%d)", a.HeartAge, int(gap))
	case gap < 0:
		w.text(okGreen)
		ageText = fmt.Sprintf("%d Yrs (%d)", a.HeartAge, int(gap))
	default:
		w.text(brandBlue)
		ageText = fmt.Sprintf("%d Yrs (Optimal)", a.HeartAge)
	}
	w.cell(0, 10, ageText, 1, "", false)
	w.text(ink)

	status, statusColor := "LOW RISK", okGreen
	if a.Prediction.Label == 1 {
		status, statusColor = "HIGH RISK", alertRed
	}
	w.cell(45, 10, "Risk Status : ", 0, "", false)
	w.text(statusColor)
	w.cell(40, 10, status, 0, "", false)
	w.text(ink)
	w.cell(30, 10, "   Probability : ", 0, "", false)
	w.cell(0, 10, fmt.Sprintf("%.2f%%", a.Prediction.Probability), 1, "", false)

	w.pdf.Ln(5)
	w.font("B", 12)
	w.cell(0, 10, fmt.Sprintf("Vital Parameters for %s:", name), 1, "", false)
	w.font("", 10)

	row := func(label, value, unit string) {
		w.fill(rowFill)
		w.boxed(60, 8, " "+label, 0, true)
		w.boxed(0, 8, fmt.Sprintf(" %s %s", value, unit), 1, false)
	}
	row("Height", number(o.Height), "cm")
	row("Weight", number(o.Weight), "kg")
	row("BMI", fmt.Sprintf("%.2f", o.BMI()), "kg/m2")
	row("Blood Pressure", number(o.Systolic)+"/"+number(o.Diastolic), "mmHg")
	row("Cholesterol", chol, "")
	row("Glucose", gluc, "")

	w.pdf.Ln(10)
	sectionHeader(w, " [1] AI-DRIVEN PERSONALIZED HEALTH ADVICE")

	w.font("", 10)
	if a.Prediction.Label == 1 || gap > 5 {
		years := "significantly"
		if gap > 0 {
			years = strconv.Itoa(int(gap))
		}
		w.text(deepRed)
		w.para(7, fmt.Sprintf("CRITICAL INSIGHT for %s: Your Heart Age is %d, which is %s years older than your actual age. This indicates rapid cardiovascular aging.", name, a.HeartAge, years))
		w.text(ink)
		w.pdf.Ln(2)
		w.para(7, "- Priority 1: Consult a cardiologist to discuss preventative medication.\n- Priority 2: Adopt a DASH diet and reduce daily salt below 1,500mg.\n- Priority 3: Begin daily aerobic activity (light walking) to 'de-age' your heart.")
	} else {
		w.text(teal)
		w.para(7, fmt.Sprintf("HEALTH OPTIMIZATION for %s: Your heart is aging at a healthy rate. Maintaining current status is key.", name))
		w.text(ink)
		w.pdf.Ln(2)
		w.para(7, "- Focus on longevity through strength training and high-fiber intake.\n- Avoid any new tobacco exposure which could accelerate heart aging by 5-10 years.")
	}

	w.pdf.Ln(10)
	w.font("I", 8)
	w.text(mutedGray)
	w.para(5, "DISCLAIMER: This report is AI-generated for educational purposes only. It is not a clinical diagnosis.")
}

func sectionHeader(w *writer, title string) {
	w.fill(headerFill)
	w.font("B", 14)
	w.text(ink)
	w.cell(0, 12, title, 1, "", true)
	w.pdf.Ln(5)
}

var (
	planHeader    = []string{"Day", "Morning Vital", "Activity Goal", "Dietary Focus"}
	planColWidths = []float64{25, 40, 60, 65}
)

const planLineHeight = 8

func planPage(w *writer, a Assessment) {
	w.pdf.AddPage()

	w.font("B", 20)
	w.text(brandBlue)
	w.cell(0, 15, " [2] 7-DAY HEART REBOOT BLUEPRINT", 1, "L", false)
	w.font("", 10)
	w.text(bodyGray)
	w.para(6, fmt.Sprintf("Tailored action plan for %s based on current clinical risk profile. Follow these daily steps to optimize cardiovascular performance.", a.PatientName))
	w.pdf.Ln(5)

	w.font("B", 10)
	w.text(white)
	w.fill(brandBlue)
	tableRow(w, planHeader, true)

	for i, day := range a.Plan {
		w.font("", 9)
		w.text(ink)
		if (i+1)%2 == 0 {
			w.fill(stripeFill)
		} else {
			w.fill(white)
		}
		tableRow(w, []string{day.Day, day.Vital, day.Activity, day.Diet}, true)
	}

	w.pdf.Ln(10)
	w.font("B", 11)
	w.text(teal)
	w.cell(0, 10, "Pro Tip: Consistency is better than intensity. Start small, stay steady.", 1, "", false)
}

// tableRow draws one row whose height fits the tallest wrapped cell.
func tableRow(w *writer, cells []string, fill bool) {
	lines := 1
	for i, txt := range cells {
		n := len(w.pdf.SplitLines([]byte(w.tr(txt)), planColWidths[i]-2))
		if n > lines {
			lines = n
		}
	}
	height := float64(lines) * planLineHeight

	_, pageHeight := w.pdf.GetPageSize()
	_, _, _, bottom := w.pdf.GetMargins()
	if w.pdf.GetY()+height > pageHeight-bottom {
		w.pdf.AddPage()
	}

	x, y := w.pdf.GetXY()
	for i, txt := range cells {
		width := planColWidths[i]
		w.pdf.Rect(x, y, width, height, fillStyle(fill))
		w.pdf.SetXY(x, y)
		w.pdf.MultiCell(width, planLineHeight, w.tr(txt), "", "L", false)
		x += width
	}
	left, _, _, _ := w.pdf.GetMargins()
	w.pdf.SetXY(left, y+height)
}

func fillStyle(fill bool) string {
	if fill {
		return "F"
	}
	return ""
}

// number prints whole values with a trailing ".0" so vitals read as measurements.
func number(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
