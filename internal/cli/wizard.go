package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pomo/internal/cli/formatter"
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pomoHuhTheme returns a huh theme matching the formatter palette.
func pomoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themed(fields ...huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(pomoHuhTheme()).WithShowHelp(false)
}

// wizardMenu creates a single-choice menu form.
func wizardMenu(title string, options []huh.Option[string], result *string) *huh.Form {
	return themed(
		huh.NewSelect[string]().
			Title(title).
			Options(options...).
			Value(result),
	)
}

// wizardSelectTask lets the user pick one of list by position, or
// noTask for unattributed work when allowNone is set.
func wizardSelectTask(title string, list []domain.Task, positions []int, allowNone bool, result *int) *huh.Form {
	options := make([]huh.Option[int], 0, len(list)+1)
	for i, t := range list {
		options = append(options, huh.NewOption(formatter.FormatTaskChoice(t), positions[i]))
	}
	if allowNone {
		options = append(options, huh.NewOption("Work without specific task", noTask))
	}
	return themed(
		huh.NewSelect[int]().
			Title(title).
			Options(options...).
			Value(result),
	)
}

// wizardSelectPriority creates a priority picker defaulting to medium.
func wizardSelectPriority(result *string) *huh.Form {
	if *result == "" {
		*result = string(domain.PriorityMedium)
	}
	return themed(
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("High", string(domain.PriorityHigh)),
				huh.NewOption("Medium", string(domain.PriorityMedium)),
				huh.NewOption("Low", string(domain.PriorityLow)),
			).
			Value(result),
	)
}

// wizardInputText creates a huh form for a single text input.
func wizardInputText(title, placeholder string, required bool, result *string) *huh.Form {
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(result)

	if required {
		input = input.Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(title))
			}
			return nil
		})
	}
	return themed(input)
}

// wizardInputMinutes creates a form for a positive whole number of minutes.
func wizardInputMinutes(title string, current int, result *string) *huh.Form {
	*result = strconv.Itoa(current)
	return themed(
		huh.NewInput().
			Title(title).
			Placeholder(strconv.Itoa(current)).
			Value(result).
			Validate(validatePositiveInt),
	)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return themed(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(result),
	)
}

// validatePositiveInt accepts a positive integer.
func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
