package main

import "github.com/charmbracelet/lipgloss"

var (
	// Palette
	teal   = lipgloss.Color("#00D4AA")
	green  = lipgloss.Color("#00C832")
	yellow = lipgloss.Color("#FFD700")
	gray   = lipgloss.Color("#aaaaaa")
	white  = lipgloss.Color("#e0e0e0")
	red    = lipgloss.Color("#FF5F56")

	bannerStyle = lipgloss.NewStyle().
			Foreground(teal).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	answerStyle = lipgloss.NewStyle().
			Foreground(white)

	methodStyle = lipgloss.NewStyle().
			Foreground(gray).
			Italic(true)

	sourceStyle = lipgloss.NewStyle().
			Foreground(gray)

	feedbackStyle = lipgloss.NewStyle().
			Foreground(yellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true)
)
