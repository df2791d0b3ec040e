package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stefanpenner/brandpilot/pkg/catalog"
	"github.com/stefanpenner/brandpilot/pkg/program"
)

const dateLayout = "2006-01-02"

// Field indexes of the program form, in tab order.
const (
	fieldBrand = iota
	fieldProgramType
	fieldDescription
	fieldStartDate
	fieldEndDate
	fieldTarget
	fieldAchievement
	fieldRewardPercentage
	fieldStatus
	fieldPaymentStatus
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Brand",
	"Program Type",
	"Description",
	"Start (YYYY-MM-DD)",
	"End (YYYY-MM-DD)",
	"Target",
	"Achievement",
	"Reward (%)",
	"Status",
	"Payment",
}

// formField is a single-line input, a multi-line text area or a choice among
// fixed options. Text fields have no length limit so editing a program never
// cuts off what was already stored.
type formField struct {
	input     textinput.Model
	area      textarea.Model
	multiline bool
	options   []string
	choice    int
	edited    bool
}

func (f *formField) isSelect() bool {
	return f.options != nil
}

func (f *formField) value() string {
	if f.isSelect() {
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.choice]
	}
	return strings.TrimSpace(f.text())
}

func (f *formField) text() string {
	if f.multiline {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *formField) setValue(s string) {
	if f.multiline {
		f.area.SetValue(s)
	} else {
		f.input.SetValue(s)
	}
	f.edited = true
}

func (f *formField) focus() tea.Cmd {
	switch {
	case f.isSelect():
		return nil
	case f.multiline:
		return f.area.Focus()
	default:
		return f.input.Focus()
	}
}

func (f *formField) blur() {
	if f.multiline {
		f.area.Blur()
	} else if !f.isSelect() {
		f.input.Blur()
	}
}

func (f *formField) updateText(msg tea.KeyMsg) (changed bool, cmd tea.Cmd) {
	before := f.text()
	if f.multiline {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	if f.text() != before {
		f.edited = true
		return true, cmd
	}
	return false, cmd
}

func (f *formField) cycle(delta int) {
	if len(f.options) == 0 {
		return
	}
	f.choice = (f.choice + delta + len(f.options)) % len(f.options)
}

// programForm is the add/edit dialog.
type programForm struct {
	editingID string // empty when adding
	original  program.Program
	fields    [fieldCount]formField
	focus     int
	err       string

	estimated   float64
	calculating bool
}

func newSelect(options []string, current string) formField {
	f := formField{options: options}
	for i, o := range options {
		if o == current {
			f.choice = i
			return f
		}
	}
	if current != "" {
		// Keep values that are no longer in the reference list
		f.options = append([]string{current}, options...)
	}
	return f
}

func newText(placeholder, value string) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.SetValue(value)
	return formField{input: ti}
}

// newArea is a multi-line field. Enter is left to the form for saving, so
// alt+enter or ctrl+j starts a new line.
func newArea(placeholder, value string) formField {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.SetWidth(40)
	ta.SetHeight(3)
	ta.SetValue(value)
	return formField{area: ta, multiline: true}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func statusNames() []string {
	names := make([]string, len(program.Statuses))
	for i, s := range program.Statuses {
		names[i] = string(s)
	}
	return names
}

func paymentNames() []string {
	names := make([]string, len(program.PaymentStatuses))
	for i, p := range program.PaymentStatuses {
		names[i] = string(p)
	}
	return names
}

// newProgramForm opens the form for p, or for a new program when p is nil.
// New programs start Pending and Unpaid.
func newProgramForm(c *catalog.Catalog, p *program.Program) *programForm {
	f := &programForm{}

	draft := program.Program{
		Status:        program.StatusPending,
		PaymentStatus: program.PaymentUnpaid,
	}
	start, end, target, achievement, percent := "", "", "0", "0", "0"
	if p != nil {
		draft = *p
		f.editingID = p.ID
		f.original = *p
		start = p.StartDate.Format(dateLayout)
		end = p.EndDate.Format(dateLayout)
		target = formatAmount(p.Target)
		achievement = formatAmount(p.Achievement)
		percent = formatAmount(p.RewardPercentage)
	}

	f.fields[fieldBrand] = newSelect(append([]string(nil), c.Brands...), draft.Brand)
	f.fields[fieldProgramType] = newSelect(append([]string(nil), c.ProgramTypes...), draft.ProgramType)
	f.fields[fieldDescription] = newArea("Program details...", draft.Description)
	f.fields[fieldStartDate] = newText("2024-01-01", start)
	f.fields[fieldEndDate] = newText("2024-03-31", end)
	f.fields[fieldTarget] = newText("e.g., 10000", target)
	f.fields[fieldAchievement] = newText("e.g., 8500", achievement)
	f.fields[fieldRewardPercentage] = newText("e.g., 5", percent)
	f.fields[fieldStatus] = newSelect(statusNames(), string(draft.Status))
	f.fields[fieldPaymentStatus] = newSelect(paymentNames(), string(draft.PaymentStatus))

	f.setFocus(0)
	return f
}

func (f *programForm) title() string {
	if f.editingID != "" {
		return "Edit Program"
	}
	return "Add New Program"
}

func (f *programForm) subtitle() string {
	if f.editingID != "" {
		return "Editing program ID: " + f.editingID
	}
	return "Fill in the details for the new program."
}

func (f *programForm) setFocus(i int) tea.Cmd {
	f.fields[f.focus].blur()
	f.focus = (i + fieldCount) % fieldCount
	return f.fields[f.focus].focus()
}

// formAction is what the model should do after a key reached the form.
type formAction int

const (
	formContinue formAction = iota
	formSubmit
	formCancel
)

// update handles a key press. rewardChanged reports whether the achievement
// or reward percentage input was edited.
func (f *programForm) update(msg tea.KeyMsg) (action formAction, rewardChanged bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return formCancel, false, nil
	case "enter", "ctrl+s":
		return formSubmit, false, nil
	case "tab", "down":
		return formContinue, false, f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		return formContinue, false, f.setFocus(f.focus - 1)
	}

	field := &f.fields[f.focus]
	if field.isSelect() {
		switch msg.String() {
		case "left", "h":
			field.cycle(-1)
		case "right", "l", " ":
			field.cycle(1)
		}
		return formContinue, false, nil
	}

	changed, cmd := field.updateText(msg)
	if changed {
		f.err = ""
	}
	isReward := f.focus == fieldAchievement || f.focus == fieldRewardPercentage
	return formContinue, changed && isReward, cmd
}

// rewardInputs returns the achievement and reward percentage as typed.
// Unparseable values come back as NaN, which the estimator treats as invalid.
func (f *programForm) rewardInputs() (achievement, percent float64) {
	return parseAmountOrNaN(f.fields[fieldAchievement].value()),
		parseAmountOrNaN(f.fields[fieldRewardPercentage].value())
}

func parseAmountOrNaN(s string) float64 {
	v, err := parseAmount(s)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseAmount reads a number field. Blank fields count as zero.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// program builds the record described by the form. Store validation still
// applies on save.
func (f *programForm) program() (program.Program, error) {
	p := program.Program{
		ID:          f.editingID,
		Brand:       f.fields[fieldBrand].value(),
		ProgramType: f.fields[fieldProgramType].value(),
		Description: f.fields[fieldDescription].value(),
	}
	if !f.fields[fieldDescription].edited {
		// Untouched descriptions are saved exactly as stored
		p.Description = f.original.Description
	}

	var err error
	if p.StartDate, err = parseDate("start date", f.fields[fieldStartDate].value()); err != nil {
		return program.Program{}, err
	}
	if p.EndDate, err = parseDate("end date", f.fields[fieldEndDate].value()); err != nil {
		return program.Program{}, err
	}

	amounts := []struct {
		name string
		idx  int
		dst  *float64
	}{
		{"target", fieldTarget, &p.Target},
		{"achievement", fieldAchievement, &p.Achievement},
		{"reward percentage", fieldRewardPercentage, &p.RewardPercentage},
	}
	for _, a := range amounts {
		v, err := parseAmount(f.fields[a.idx].value())
		if err != nil {
			return program.Program{}, fmt.Errorf("%s must be a number", a.name)
		}
		*a.dst = v
	}

	status, ok := program.ParseStatus(f.fields[fieldStatus].value())
	if !ok {
		return program.Program{}, fmt.Errorf("status is required")
	}
	p.Status = status
	payment, ok := program.ParsePaymentStatus(f.fields[fieldPaymentStatus].value())
	if !ok {
		return program.Program{}, fmt.Errorf("payment status is required")
	}
	p.PaymentStatus = payment
	return p, nil
}

func parseDate(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must look like 2024-01-31", name)
	}
	return t, nil
}
