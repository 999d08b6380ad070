package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/lectio"
	"github.com/fwojciec/lectio/lookup"
)

// Run executes the confessions command.
func (c *ConfessionsCmd) Run(deps *Dependencies) error {
	confessions, err := deps.Service.Confessions.FindConfessions(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}

	if len(confessions) == 0 {
		fmt.Fprintln(deps.Stdout, "No confessions registered")
		return nil
	}

	for _, conf := range confessions {
		fmt.Fprintf(deps.Stdout, "%s\t%s\n", conf.Command, conf.Name)
	}
	return nil
}

// Run executes the confess command. Without an address it prints the
// table of contents.
func (c *ConfessCmd) Run(deps *Dependencies) error {
	if c.Address == "" {
		contents, err := deps.Service.Contents(deps.Ctx, c.Command)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
			return err
		}
		writeContents(deps.Stdout, contents)
		return nil
	}

	section, err := deps.Service.LookupSection(deps.Ctx, c.Command, c.Address)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, formatSection(section))
	return nil
}

// Run executes the confess-search command.
func (c *ConfessSearchCmd) Run(deps *Dependencies) error {
	res, err := deps.Service.SearchSections(deps.Ctx, c.Command, c.Terms, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lectio.ErrorMessage(err))
		return err
	}

	noun := "matches"
	if res.Total == 1 {
		noun = "match"
	}
	fmt.Fprintf(deps.Stdout, "I have found %d %s in the %s\n", res.Total, noun, res.Confession.Name)
	for _, sec := range res.Sections {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", sec.Address(), lectio.Truncate(sectionText(sec), 80))
	}
	return nil
}

func writeContents(w io.Writer, contents *lookup.Contents) {
	conf := contents.Confession
	fmt.Fprintln(w, conf.Name)
	switch conf.Type {
	case lectio.ConfessionChapters:
		for _, ch := range contents.Chapters {
			fmt.Fprintf(w, "%s. %s\n", conf.Numbering.Format(ch.Number), ch.Title)
		}
	case lectio.ConfessionArticles:
		for _, a := range contents.Articles {
			fmt.Fprintf(w, "%s. %s\n", conf.Numbering.Format(a.Number), a.Title)
		}
	case lectio.ConfessionQA:
		fmt.Fprintf(w, "%d questions\n", contents.QuestionCount)
	}
}

// formatSection renders a section as a chat message body.
func formatSection(sec *lookup.Section) string {
	conf := sec.Confession
	switch {
	case sec.Paragraph != nil:
		p := sec.Paragraph
		heading := fmt.Sprintf("**%s %s.%d**", conf.Name, conf.Numbering.Format(p.ChapterNumber), p.Number)
		if p.Chapter != nil && p.Chapter.Title != "" {
			heading += " " + p.Chapter.Title
		}
		return heading + "\n\n" + p.Text
	case sec.Question != nil:
		q := sec.Question
		return fmt.Sprintf("**%s %d.** %s\n\n%s", conf.Name, q.Number, q.Text, q.Answer)
	case sec.Article != nil:
		a := sec.Article
		return fmt.Sprintf("**%s %s. %s**\n\n%s", conf.Name, conf.Numbering.Format(a.Number), a.Title, a.Text)
	}
	return ""
}

func sectionText(sec *lookup.Section) string {
	var text string
	switch {
	case sec.Paragraph != nil:
		text = sec.Paragraph.Text
	case sec.Question != nil:
		text = sec.Question.Text
	case sec.Article != nil:
		text = sec.Article.Title
	}
	return strings.Join(strings.Fields(text), " ")
}
