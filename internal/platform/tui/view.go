package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/keymash/internal/core"
	"github.com/vovakirdan/keymash/internal/mechanic"
	"github.com/vovakirdan/keymash/internal/session"
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.ctrl.State() {
	case session.WaitingForStart:
		body = m.viewTitle()
	case session.RoundTransition:
		body = m.viewTransition()
	case session.InGame:
		body = m.viewRound()
	default:
		body = m.viewResult()
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		body,
		"",
		m.theme.Help.Render(m.help.View(m.keys)),
	)
	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return content
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewTitle() string {
	lines := []string{
		m.theme.Title.Render("K E Y M A S H"),
		m.theme.Subtitle.Render(fmt.Sprintf("%d rounds. Mash the green key before time runs out.", m.ctrl.TotalRounds())),
		"",
	}
	if m.hud.best > 0 {
		lines = append(lines, "Best run: "+m.theme.Value.Render(fmt.Sprintf("%d taps", m.hud.best)), "")
	}
	if m.hud.err != nil {
		lines = append(lines, m.theme.Invalid.Render("Error: "+m.hud.err.Error()), "")
	}
	lines = append(lines, m.theme.Countdown.Render("Press ENTER to start"))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) viewTransition() string {
	orch := m.ctrl.Orchestrator()
	r, _ := orch.CurrentRound()

	header := m.roundHeader()
	info := m.theme.Subtitle.Render(fmt.Sprintf("%s: %d taps in %s",
		r.Mechanic.Title(), r.RequiredTaps, formatSeconds(r.Duration)))

	var beat string
	switch m.ctrl.Phase() {
	case session.AwaitingConfirmation:
		beat = m.theme.Countdown.Render("Press ENTER when ready")
	default:
		if b := m.ctrl.CountdownBeat(); b == session.GoBeat {
			beat = m.theme.Won.Render("GO!")
		} else {
			beat = m.theme.Countdown.Render(fmt.Sprintf("%d", b))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Center, header, info, "", beat)
}

func (m Model) viewRound() string {
	orch := m.ctrl.Orchestrator()
	r, _ := orch.CurrentRound()

	ratio := 0.0
	if r.RequiredTaps > 0 {
		ratio = float64(orch.Progress()) / float64(r.RequiredTaps)
	}

	status := fmt.Sprintf("%s   %s   %s",
		"Time "+m.theme.Value.Render(formatSeconds(orch.RemainingTime())),
		"Taps "+m.theme.Value.Render(fmt.Sprintf("%d/%d", orch.Progress(), r.RequiredTaps)),
		"Total "+m.theme.Value.Render(fmt.Sprintf("%d", m.ctrl.TotalTaps())),
	)

	lines := []string{
		m.roundHeader(),
		m.theme.Subtitle.Render(r.Mechanic.Title()),
		"",
		m.renderKeys(r.Mechanic, orch.ActiveKeys(), orch.CurrentKey()),
		"",
		m.progress.ViewAs(ratio),
		status,
		m.renderFeedback(),
	}
	if m.ctrl.IsPaused() {
		lines = append(lines, "", m.theme.Overlay.Render(m.theme.Countdown.Render("PAUSED")+"\n\nesc to resume"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) viewResult() string {
	res := m.hud.result
	if res == nil {
		return m.theme.Subtitle.Render("Session over")
	}

	title := m.theme.Lost.Render("GAME OVER")
	if res.Won {
		title = m.theme.Won.Render("YOU WIN!")
	}
	lines := []string{
		title,
		"",
		fmt.Sprintf("Rounds cleared: %s", m.theme.Value.Render(fmt.Sprintf("%d/%d", res.RoundsCleared, res.TotalRounds))),
		fmt.Sprintf("Total taps: %s", m.theme.Value.Render(fmt.Sprintf("%d", res.TotalTaps))),
	}
	if m.hud.newBest {
		lines = append(lines, m.theme.Countdown.Render("New best run!"))
	} else if m.hud.best > 0 {
		lines = append(lines, m.theme.Dim.Render(fmt.Sprintf("Best: %d taps", m.hud.best)))
	}
	lines = append(lines, "", m.theme.Subtitle.Render("r to retry, backspace for menu"))
	return m.theme.Overlay.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) roundHeader() string {
	return m.theme.Title.Render(fmt.Sprintf("ROUND %d/%d", m.ctrl.RoundNumber(), m.ctrl.TotalRounds()))
}

// renderKeys draws one slot per active key. The current key is green; for
// KeySequence the upcoming key is dimmed, otherwise other keys are red.
func (m Model) renderKeys(kind mechanic.Kind, keys []core.Key, current core.Key) string {
	if len(keys) == 0 {
		return ""
	}
	slots := make([]string, len(keys))
	for i, k := range keys {
		style := m.theme.KeyOther
		switch {
		case k == current && (kind != mechanic.KeySequence || i == 0):
			style = m.theme.KeyCurrent
		case kind == mechanic.KeySequence:
			style = m.theme.KeyNext
		}
		slots[i] = style.Render(keyLabel(k))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, slots...)
}

func (m Model) renderFeedback() string {
	if m.hud.flash == 0 {
		return " "
	}
	if m.hud.valid {
		return m.theme.Valid.Render("+1")
	}
	return m.theme.Invalid.Render("-1")
}

// keyLabel returns the on-screen name of a key.
func keyLabel(k core.Key) string {
	return strings.ToUpper(k.String())
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
