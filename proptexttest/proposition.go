package proptexttest

import (
	"fmt"
	"time"

	"github.com/camaradados/proptext"
)

var (
	parties = []string{"PT", "PL", "UNIÃO", "PP", "PSD", "MDB", "REPUBLICANOS", "PDT", "PSB", "PSOL"}
	states  = []string{"AC", "AL", "AM", "BA", "CE", "DF", "ES", "GO", "MG", "PR", "RJ", "RS", "SP"}
	types   = []string{"Projeto de Lei", "Proposta de Emenda à Constituição", "Projeto de Lei Complementar"}
)

func (g *DataGen) Author() proptext.Author {
	return proptext.Author{
		ID:    proptext.AuthorID(g.Number(100000, 999999)),
		Name:  g.Name(),
		Party: g.RandomString(parties),
		State: g.RandomString(states),
	}
}

type PropositionOption func(*proptext.Proposition)

func WithPropositionID(id proptext.PropositionID) PropositionOption {
	return func(p *proptext.Proposition) {
		p.ID = id
	}
}

func WithPropositionURL(url string) PropositionOption {
	return func(p *proptext.Proposition) {
		p.URL = url
	}
}

func WithPropositionAuthors(ids ...proptext.AuthorID) PropositionOption {
	return func(p *proptext.Proposition) {
		p.AuthorIDs = ids
	}
}

// WithPropositionText completes the proposition as extracted with text.
func WithPropositionText(text string) PropositionOption {
	return func(p *proptext.Proposition) {
		p.Text = text
		p.Status = proptext.TextStatusExtracted
	}
}

func WithPropositionStatus(status proptext.TextStatus, message string) PropositionOption {
	return func(p *proptext.Proposition) {
		p.Status = status
		p.StatusMessage = message
	}
}

func WithPropositionUpdated(updated time.Time) PropositionOption {
	return func(p *proptext.Proposition) {
		p.Updated = updated
	}
}

// Proposition returns a pending proposition submitted in the past year.
func (g *DataGen) Proposition(options ...PropositionOption) *proptext.Proposition {
	id := proptext.PropositionID(g.Number(2000000, 2999999))

	aProposition := proptext.Proposition{
		ID:          id,
		URL:         fmt.Sprintf("https://www.camara.leg.br/proposicoesWeb/prop_mostrarintegra?codteor=%d", id),
		Type:        g.RandomString(types),
		SubmittedAt: g.DateRange(g.now.AddDate(-1, 0, 0), g.now).UTC().Truncate(time.Second),
		Status:      proptext.TextStatusPending,
		Updated:     g.now,
	}

	for _, o := range options {
		o(&aProposition)
	}

	return &aProposition
}

type SummaryOption func(*proptext.Summary)

func WithSummaryEntities(entities ...proptext.Entity) SummaryOption {
	return func(s *proptext.Summary) {
		s.Entities = entities
	}
}

// Summary returns a valid summary of the proposition with the given id.
func (g *DataGen) Summary(id proptext.PropositionID, options ...SummaryOption) proptext.Summary {
	aSummary := proptext.Summary{
		PropositionID: id,
		TextSummary:   g.Sentence(30),
		MainTheme:     g.Sentence(6),
		Sentiment:     g.RandomString(proptext.Sentiments),
		Ideology:      g.RandomString(proptext.Ideologies),
		Entities: []proptext.Entity{
			{Type: "pessoa", Value: g.Name()},
			{Type: "local", Value: g.City()},
		},
	}

	for _, o := range options {
		o(&aSummary)
	}

	return aSummary
}

func (g *DataGen) Topic() string {
	return g.RandomString(proptext.Topics)
}
