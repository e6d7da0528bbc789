// Package dashboard is the terminal dashboard: the project list, its
// counters and the new-project form on a single screen.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devboard-esn/devboard/internal/form"
	"github.com/devboard-esn/devboard/internal/store"
	"github.com/devboard-esn/devboard/pkg/models"
)

const (
	tableHeight = 12
	dateLayout  = "02/01/2006"
)

// Form inputs, in focus order. The status selector comes after them.
const (
	inputName = iota
	inputClient
	inputDescription
	inputCount
)

// focusStatus is the focus index of the status selector
const focusStatus = inputCount

var inputFields = [inputCount]string{models.FieldName, models.FieldClient, models.FieldDescription}

// Message types
type refreshedMsg struct{ err error }
type createdMsg struct {
	project models.Project
	err     error
}
type deletedMsg struct{ err error }

// Model is the bubbletea model of the dashboard
type Model struct {
	store *store.ProjectStore
	form  *form.Controller

	table   table.Model
	rowIDs  []string
	spinner spinner.Model

	inputs    [inputCount]textinput.Model
	statusIdx int
	focus     int

	confirm    *store.DeleteIntent
	submitting bool
	err        error
	quitting   bool
}

// NewModel creates a dashboard over a store and its form
func NewModel(s *store.ProjectStore, f *form.Controller) Model {
	columns := []table.Column{
		{Title: "Nom", Width: 24},
		{Title: "Client", Width: 18},
		{Title: "Statut", Width: 14},
		{Title: "Créé le", Width: 10},
		{Title: "Description", Width: 30},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	placeholders := [inputCount]string{"Nom du projet", "Client", "Description"}
	var inputs [inputCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 255
		ti.Width = 40
		inputs[i] = ti
	}

	m := Model{
		store:   s,
		form:    f,
		table:   t,
		spinner: sp,
		inputs:  inputs,
	}
	m.syncInputs()
	m.syncRows()
	return m
}

// Init starts the spinner and the initial fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, initStore(m.store))
}

func initStore(s *store.ProjectStore) tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: s.Init(context.Background())}
	}
}

func refreshStore(s *store.ProjectStore) tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: s.Refresh(context.Background())}
	}
}

func submitForm(f *form.Controller) tea.Cmd {
	return func() tea.Msg {
		project, err := f.Submit(context.Background())
		return createdMsg{project: project, err: err}
	}
}

func deleteProject(s *store.ProjectStore, id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{err: s.Delete(context.Background(), id)}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch {
		case m.confirm != nil:
			return m.updateConfirm(msg)
		case m.form.Visible():
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}

	case refreshedMsg:
		m.err = msg.err
		m.syncRows()
		return m, nil

	case createdMsg:
		// The form has reset itself whatever the outcome
		m.submitting = false
		m.syncInputs()
		m.blurInputs()
		m.table.Focus()
		m.err = msg.err
		m.syncRows()
		return m, nil

	case deletedMsg:
		m.err = msg.err
		m.syncRows()
		return m, nil

	case spinner.TickMsg:
		if !m.store.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "r":
		return m, refreshStore(m.store)
	case "n":
		m.form.ToggleVisible()
		m.table.Blur()
		m.focus = inputName
		return m, m.inputs[inputName].Focus()
	case "d":
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		intent, err := m.store.RequestDelete(id)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.confirm = &intent
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "o":
		id := m.confirm.ID
		m.confirm = nil
		return m, deleteProject(m.store, id)
	case "n", "esc":
		m.confirm = nil
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Hiding keeps the draft for the next time the form is opened
		m.form.ToggleVisible()
		m.blurInputs()
		m.table.Focus()
		return m, nil
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % (inputCount + 1))
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + inputCount) % (inputCount + 1))
	case "enter":
		// One submit at a time for the draft on screen
		if m.submitting {
			return m, nil
		}
		if err := m.form.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		m.submitting = true
		return m, submitForm(m.form)
	}

	if m.focus == focusStatus {
		switch msg.String() {
		case "left", "h":
			m.cycleStatus(-1)
		case "right", "l", " ":
			m.cycleStatus(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if err := m.form.UpdateField(inputFields[m.focus], m.inputs[m.focus].Value()); err != nil {
		m.err = err
	}
	return m, cmd
}

func (m *Model) setFocus(focus int) tea.Cmd {
	m.blurInputs()
	m.focus = focus
	if focus < inputCount {
		return m.inputs[focus].Focus()
	}
	return nil
}

func (m *Model) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *Model) cycleStatus(delta int) {
	statuses := models.Statuses()
	m.statusIdx = (m.statusIdx + delta + len(statuses)) % len(statuses)
	if err := m.form.UpdateField(models.FieldStatus, statuses[m.statusIdx].String()); err != nil {
		m.err = err
	}
}

// syncInputs copies the form's draft into the inputs
func (m *Model) syncInputs() {
	draft := m.form.Draft()
	values := [inputCount]string{draft.Name, draft.Client, draft.Description}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}
	m.statusIdx = 0
	for i, s := range models.Statuses() {
		if s == draft.Status {
			m.statusIdx = i
		}
	}
}

// syncRows rebuilds the table from the store's collection
func (m *Model) syncRows() {
	projects := m.store.Projects()
	rows := make([]table.Row, 0, len(projects))
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		label, _ := m.store.Label(p.Status)
		rows = append(rows, table.Row{
			p.Name,
			p.Client,
			label,
			formatDate(p.CreatedAt),
			p.Description,
		})
		ids = append(ids, p.ID)
	}
	m.rowIDs = ids
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) selectedID() (string, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.rowIDs) {
		return "", false
	}
	return m.rowIDs[cursor], true
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}

// View renders the dashboard
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("DevBoard · Projets ESN"))
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")

	if m.store.Loading() {
		b.WriteString("\n" + m.spinner.View() + dimStyle.Render(" Chargement...") + "\n")
	} else if len(m.rowIDs) == 0 {
		b.WriteString("\n" + dimStyle.Render("Aucun projet") + "\n")
	} else {
		b.WriteString(sectionStyle.Render("Projets") + "\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.form.Visible() {
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	}

	if m.confirm != nil {
		b.WriteString("\n" + warningStyle.Render(m.confirm.Prompt) + dimStyle.Render(" [y/n]") + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("⚠ "+describeError(m.err)) + "\n")
	}

	b.WriteString(m.renderFooter())
	return containerStyle.Render(b.String())
}

func (m Model) renderStats() string {
	stats := m.store.Stats()
	inProgress, _ := m.store.Label(models.StatusInProgress)
	delivered, _ := m.store.Label(models.StatusDelivered)
	return fmt.Sprintf("%s %s   %s %s   %s %s",
		labelStyle.Render("Total"), valueStyle.Render(fmt.Sprint(stats.Total)),
		labelStyle.Render(inProgress), valueStyle.Render(fmt.Sprint(stats.InProgress)),
		labelStyle.Render(delivered), valueStyle.Render(fmt.Sprint(stats.Delivered)),
	)
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Nouveau projet") + "\n")
	titles := [inputCount]string{"Nom", "Client", "Description"}
	for i := range m.inputs {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", titles[i])))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	status := models.Statuses()[m.statusIdx]
	label, _ := m.store.Label(status)
	marker := " "
	if m.focus == focusStatus {
		marker = ">"
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", "Statut")))
	b.WriteString(fmt.Sprintf("%s ◀ %s ▶", marker, valueStyle.Render(label)))
	return formStyle.Render(b.String())
}

func (m Model) renderFooter() string {
	var keys [][2]string
	switch {
	case m.confirm != nil:
		keys = [][2]string{{"y", "confirmer"}, {"n", "annuler"}}
	case m.form.Visible():
		keys = [][2]string{{"tab", "champ suivant"}, {"←/→", "statut"}, {"enter", "créer"}, {"esc", "fermer"}}
	default:
		keys = [][2]string{{"n", "nouveau"}, {"d", "supprimer"}, {"r", "rafraîchir"}, {"q", "quitter"}}
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, footerKeyStyle.Render("["+k[0]+"]")+" "+k[1])
	}
	return footerStyle.Render(strings.Join(parts, "  "))
}

// describeError returns the line shown in the footer for an error
func describeError(err error) string {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return "Champs requis: " + strings.Join(verr.Fields, ", ")
	}
	return err.Error()
}
