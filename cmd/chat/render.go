package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

// 화면 테마 이름과 glamour 스타일의 대응. very-dark 는 가장 어두운 내장 스타일을 쓴다.
var themeStyles = map[string]string{
	"light":     "light",
	"dark":      "dark",
	"very-dark": "tokyo-night",
}

const noTTYStyle = "notty"

func themeNames() string {
	return "light, dark, very-dark"
}

// styleFor maps a theme to a glamour style. Output that is not a terminal always gets plain text.
func styleFor(theme string, tty bool) (string, error) {
	style, ok := themeStyles[strings.ToLower(theme)]
	if !ok {
		return "", errors.Errorf("unknown theme %q (choose %s)", theme, themeNames())
	}
	if !tty {
		return noTTYStyle, nil
	}
	return style, nil
}

type markdownRenderer struct {
	style string
}

// Render 는 실패하면 원문을 그대로 돌려준다.
func (m markdownRenderer) Render(md string) string {
	out, err := glamour.Render(md, m.style)
	if err != nil {
		return md + "\n"
	}
	return out
}

var (
	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFDF5")).Background(lipgloss.Color("62")).Padding(0, 1)
	timeStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#AFAFAF"))
)

// labelStyles 는 터미널일 때만 색을 입힌다. 파이프 출력은 평문.
type labelStyles struct {
	tty bool
}

func newLabelStyles(tty bool) labelStyles {
	return labelStyles{tty: tty}
}

func (l labelStyles) paint(s lipgloss.Style, text string) string {
	if !l.tty {
		return text
	}
	return s.Render(text)
}

func (l labelStyles) user() string      { return l.paint(userLabelStyle, "you:") }
func (l labelStyles) assistant() string { return l.paint(assistantLabelStyle, "VB Capital AI:") }

func (l labelStyles) time(ts string) string {
	if ts == "" {
		return l.paint(timeStyle, "[--:--]")
	}
	return l.paint(timeStyle, "["+ts+"]")
}
