package cmd

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/iksnae/question-digest/internal"
)

// dataset is a built digest the read-only commands work from
type dataset interface {
	Index() (*internal.Index, error)
	Day(day string) (*internal.DayFile, error)
	// Search returns questions of every day whose text contains term,
	// ignoring case, ordered by day and position.
	Search(term string) ([]internal.Question, error)
	Close() error
}

type dirDataset struct {
	sink *internal.DirSink
}

func (d *dirDataset) Index() (*internal.Index, error)           { return d.sink.LoadIndex() }
func (d *dirDataset) Day(day string) (*internal.DayFile, error) { return d.sink.LoadDay(day) }
func (d *dirDataset) Close() error                              { return nil }

func (d *dirDataset) Search(term string) ([]internal.Question, error) {
	index, err := d.sink.LoadIndex()
	if err != nil {
		return nil, err
	}
	var questions []internal.Question
	for _, meta := range index.Days {
		day, err := d.sink.LoadDay(meta.Day)
		if err != nil {
			return nil, err
		}
		for _, item := range day.Filter(term) {
			questions = append(questions, internal.Question{
				Text:      item.Text,
				Timestamp: item.Time,
				Title:     item.Title,
				Date:      day.Day,
			})
		}
	}
	return questions, nil
}

type sqliteDataset struct {
	db *sql.DB
}

func (d *sqliteDataset) Index() (*internal.Index, error)           { return internal.QueryIndex(d.db) }
func (d *sqliteDataset) Day(day string) (*internal.DayFile, error) { return internal.QueryDay(d.db, day) }
func (d *sqliteDataset) Close() error                              { return d.db.Close() }

func (d *sqliteDataset) Search(term string) ([]internal.Question, error) {
	return internal.SearchQuestions(d.db, term)
}

// openDataset reads from the SQLite mirror when one is configured, otherwise
// from the output directory.
func openDataset() (dataset, error) {
	if conf.SQLite != "" {
		db, err := internal.OpenDatabase(conf.SQLite)
		if err != nil {
			return nil, err
		}
		internal.LogDebug("Reading dataset from %s", conf.SQLite)
		return &sqliteDataset{db: db}, nil
	}
	internal.LogDebug("Reading dataset from %s", conf.OutDir)
	return &dirDataset{sink: internal.NewDirSink(conf.OutDir)}, nil
}

// explain adds a next step to the errors a user can act on
func explain(err error) error {
	switch {
	case errors.Is(err, internal.ErrNoIndex):
		return fmt.Errorf("%w: run `question-digest <export-file>` first", err)
	case errors.Is(err, internal.ErrDayNotFound):
		return fmt.Errorf("%w: see `question-digest list` for available days", err)
	}
	return err
}
