package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/larascan/domain"
)

// ReportFormatterImpl renders check responses as text, JSON or YAML
type ReportFormatterImpl struct{}

// NewReportFormatter creates a new report formatter
func NewReportFormatter() *ReportFormatterImpl {
	return &ReportFormatterImpl{}
}

// Write renders response in format to writer
func (f *ReportFormatterImpl) Write(response *domain.CheckResponse, format domain.OutputFormat, writer io.Writer) error {
	var err error
	switch format {
	case domain.OutputFormatJSON:
		err = WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		err = WriteYAML(writer, response)
	case domain.OutputFormatText, "":
		err = f.writeText(response, writer)
	default:
		return domain.NewInvalidInputError(fmt.Sprintf("unsupported output format: %s", format), nil)
	}
	if err != nil {
		return domain.NewOutputError("failed to write report", err)
	}
	return nil
}

// WriteJSON writes data as indented JSON
func WriteJSON(writer io.Writer, data any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML
func WriteYAML(writer io.Writer, data any) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// textStyles are bound to the output writer so colors only appear on terminals
type textStyles struct {
	pass   lipgloss.Style
	fail   lipgloss.Style
	tag    lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	code   lipgloss.Style
	header lipgloss.Style
}

func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		pass:   r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		fail:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		tag:    r.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Bold(true).Padding(0, 1),
		label:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
		code:   r.NewStyle().Foreground(lipgloss.Color("6")).PaddingLeft(4),
		header: r.NewStyle().Bold(true).Underline(true),
	}
}

func (f *ReportFormatterImpl) writeText(response *domain.CheckResponse, w io.Writer) error {
	st := newTextStyles(w)
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", st.header.Render("larascan "+response.Version))

	width := 0
	for _, r := range response.Results {
		width = max(width, len(r.Preset))
	}

	for _, r := range response.Results {
		name := fmt.Sprintf("%-*s", width, r.Preset)
		if r.Passed {
			fmt.Fprintf(&b, "%s %s  %s\n", st.pass.Render("PASS"), name,
				st.muted.Render(fmt.Sprintf("%d classes", r.ClassesScoped)))
			continue
		}
		fmt.Fprintf(&b, "%s %s  %s\n", st.fail.Render("FAIL"), name,
			st.muted.Render(fmt.Sprintf("%d violation(s)", len(r.Violations))))
	}

	for _, r := range response.Results {
		for i := range r.Violations {
			b.WriteString("\n")
			writeDiagnostic(&b, st, &r.Violations[i])
		}
	}

	if len(response.Warnings) > 0 {
		fmt.Fprintf(&b, "\n%s\n", st.label.Render("Warnings:"))
		for _, warning := range response.Warnings {
			fmt.Fprintf(&b, "  %s\n", st.muted.Render(warning))
		}
	}

	s := response.Summary
	status := st.pass.Render("PASSED")
	if !response.Passed {
		status = st.fail.Render("FAILED")
	}
	fmt.Fprintf(&b, "\n%s  %d preset(s), %d failed, %d violation(s) in %d files / %d classes (%dms)\n",
		status, s.PresetsRun, s.PresetsFailed, s.TotalViolations, s.FilesParsed, s.ClassesFound, response.DurationMs)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDiagnostic(b *strings.Builder, st textStyles, d *domain.Diagnostic) {
	fmt.Fprintf(b, "%s %s\n", st.tag.Render(d.Category.Tag()), st.label.Render(d.Title))
	if d.Statement != "" {
		fmt.Fprintf(b, "  %s\n", d.Statement)
	}
	b.WriteString("\n")

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(b, "  %s %s\n", st.label.Render(fmt.Sprintf("%-9s", label+":")), value)
		}
	}
	field("Class", d.Class)
	field("Method", d.Method)
	field("Location", d.Location())
	field("Rule", d.Rule)
	field("Detail", d.Detail)
	field("Why", d.Reason)
	if len(d.Options) > 0 {
		field("Options", strings.Join(d.Options, ", "))
	}
	field("Fix", d.Fix)
	if d.Example != "" {
		fmt.Fprintf(b, "  %s\n", st.label.Render("Example:"))
		for _, line := range strings.Split(d.Example, "\n") {
			fmt.Fprintf(b, "%s\n", st.code.Render(line))
		}
	}
	field("Docs", d.Reference)
}
