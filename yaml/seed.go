// Package yaml reads seed data from YAML documents.
package yaml

import (
	"errors"
	"io"
	"os"

	"github.com/fwojciec/lectio"
	yamlv3 "gopkg.in/yaml.v3"
)

type seedFile struct {
	Versions    []versionEntry    `yaml:"versions"`
	Confessions []confessionEntry `yaml:"confessions"`
}

type versionEntry struct {
	Command      string `yaml:"command"`
	Name         string `yaml:"name"`
	Abbreviation string `yaml:"abbreviation"`
	Backend      string `yaml:"backend"`
	Locator      string `yaml:"locator"`
	RightToLeft  bool   `yaml:"rtl"`
	// Books lists groups and book names, as in "OT,NT,Tobit".
	Books string `yaml:"books"`
}

type confessionEntry struct {
	Command   string         `yaml:"command"`
	Name      string         `yaml:"name"`
	Type      string         `yaml:"type"`
	Numbering string         `yaml:"numbering"`
	Chapters  []chapterEntry `yaml:"chapters"`
	Questions []struct {
		Number   int    `yaml:"number"`
		Question string `yaml:"question"`
		Answer   string `yaml:"answer"`
	} `yaml:"questions"`
	Articles []struct {
		Number int    `yaml:"number"`
		Title  string `yaml:"title"`
		Text   string `yaml:"text"`
	} `yaml:"articles"`
}

type chapterEntry struct {
	Number     int    `yaml:"number"`
	Title      string `yaml:"title"`
	Paragraphs []struct {
		Number int    `yaml:"number"`
		Text   string `yaml:"text"`
	} `yaml:"paragraphs"`
}

// LoadSeedFile reads a seed document from path.
func LoadSeedFile(path string) (*lectio.Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSeed(f)
}

// LoadSeed decodes and validates a seed document. Unknown fields are
// rejected so typos surface instead of silently dropping data.
func LoadSeed(r io.Reader) (*lectio.Seed, error) {
	dec := yamlv3.NewDecoder(r)
	dec.KnownFields(true)

	var file seedFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, lectio.Errorf(lectio.EINVALID, "seed: %v", err)
	}

	seed := &lectio.Seed{}
	for _, e := range file.Versions {
		books, err := lectio.ParseBookMask(e.Books)
		if err != nil {
			return nil, lectio.Errorf(lectio.ErrorCode(err), "seed version %s: %s", e.Command, lectio.ErrorMessage(err))
		}
		v := &lectio.Version{
			Command:      e.Command,
			Name:         e.Name,
			Abbreviation: e.Abbreviation,
			Backend:      e.Backend,
			Locator:      e.Locator,
			RightToLeft:  e.RightToLeft,
			Books:        books,
		}
		if err := v.Validate(); err != nil {
			return nil, lectio.Errorf(lectio.EINVALID, "seed version %s: %s", e.Command, lectio.ErrorMessage(err))
		}
		seed.Versions = append(seed.Versions, v)
	}

	for _, e := range file.Confessions {
		doc, err := e.document()
		if err != nil {
			return nil, err
		}
		seed.Confessions = append(seed.Confessions, doc)
	}

	return seed, nil
}

func (e *confessionEntry) document() (*lectio.ConfessionDocument, error) {
	c := &lectio.Confession{
		Command:   e.Command,
		Name:      e.Name,
		Type:      lectio.ConfessionType(e.Type),
		Numbering: lectio.Numbering(e.Numbering),
	}
	if c.Numbering == "" {
		c.Numbering = lectio.NumberingArabic
	}
	if err := c.Validate(); err != nil {
		return nil, lectio.Errorf(lectio.EINVALID, "seed confession %s: %s", e.Command, lectio.ErrorMessage(err))
	}

	doc := &lectio.ConfessionDocument{Confession: c}
	for _, ch := range e.Chapters {
		doc.Chapters = append(doc.Chapters, &lectio.Chapter{Number: ch.Number, Title: ch.Title})
		for _, p := range ch.Paragraphs {
			doc.Paragraphs = append(doc.Paragraphs, &lectio.Paragraph{ChapterNumber: ch.Number, Number: p.Number, Text: p.Text})
		}
	}
	for _, q := range e.Questions {
		doc.Questions = append(doc.Questions, &lectio.Question{Number: q.Number, Text: q.Question, Answer: q.Answer})
	}
	for _, a := range e.Articles {
		doc.Articles = append(doc.Articles, &lectio.Article{Number: a.Number, Title: a.Title, Text: a.Text})
	}

	var mismatch bool
	switch c.Type {
	case lectio.ConfessionChapters:
		mismatch = len(doc.Questions) > 0 || len(doc.Articles) > 0
	case lectio.ConfessionQA:
		mismatch = len(doc.Chapters) > 0 || len(doc.Articles) > 0
	case lectio.ConfessionArticles:
		mismatch = len(doc.Chapters) > 0 || len(doc.Questions) > 0
	}
	if mismatch {
		return nil, lectio.Errorf(lectio.EINVALID, "seed confession %s: sections do not match type %s", c.Command, c.Type)
	}

	return doc, nil
}
