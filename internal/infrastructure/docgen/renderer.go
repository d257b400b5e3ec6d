package docgen

import (
	"bytes"
	"text/template"
	"time"
)

// ContractData is the bundle rendered into a contract document.
type ContractData struct {
	MissionTitle  string
	FacilityType  string
	Location      string
	StartDate     time.Time
	EndDate       time.Time
	StartTime     string
	EndTime       string
	HourlyRate    float64
	CandidateName string
	EmployerName  string
	CompanyName   string
	GeneratedAt   time.Time
}

const contractTemplate = `CONTRAT DE MISSION

Mission: {{.MissionTitle}} ({{.FacilityType}})
Lieu: {{.Location}}
Periode: {{.StartDate.Format "2006-01-02"}} - {{.EndDate.Format "2006-01-02"}}, {{.StartTime}}-{{.EndTime}}
Taux horaire: {{printf "%.2f" .HourlyRate}} EUR

Entre {{.CompanyName}}{{if .EmployerName}} (represente par {{.EmployerName}}){{end}}
et {{.CandidateName}}.

Genere le {{.GeneratedAt.Format "2006-01-02 15:04"}} UTC.
`

var tmpl = template.Must(template.New("contract").Parse(contractTemplate))

// Render produces the contract document body. Pure data-to-text.
func Render(d ContractData) (string, error) {
	if d.GeneratedAt.IsZero() {
		d.GeneratedAt = time.Now().UTC()
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
