package store

import (
	"github.com/camaradados/proptext"
	"github.com/camaradados/proptext/proptexttest"
)

func (s *StoreTestSuite) TestSaveSummaries() {
	ctx, cancel := testContext()
	defer cancel()

	aProposition := gen.Proposition(proptexttest.WithPropositionText("Art. 1º Fica instituído o Dia Nacional do Livro."))
	s.Require().NoError(s.adapter.SavePropositions(ctx, aProposition))

	aSummary := gen.Summary(aProposition.ID)
	s.Require().NoError(s.adapter.SaveSummaries(ctx, aSummary))

	s.Run("Find saved summary", func() {
		saved, err := s.adapter.FindSummary(ctx, aProposition.ID)
		s.Require().NoError(err)
		s.Equal(aSummary, saved)
	})

	s.Run("Replace summary and entities", func() {
		replaced := gen.Summary(aProposition.ID, proptexttest.WithSummaryEntities(
			proptext.Entity{Type: "data", Value: "06 de nov. de 2025"},
		))
		s.Require().NoError(s.adapter.SaveSummaries(ctx, replaced))

		saved, err := s.adapter.FindSummary(ctx, aProposition.ID)
		s.Require().NoError(err)
		s.Equal(replaced, saved)
	})

	s.Run("Summary without entities", func() {
		replaced := gen.Summary(aProposition.ID, proptexttest.WithSummaryEntities())
		s.Require().NoError(s.adapter.SaveSummaries(ctx, replaced))

		saved, err := s.adapter.FindSummary(ctx, aProposition.ID)
		s.Require().NoError(err)
		s.Empty(saved.Entities)
		s.Equal(replaced.TextSummary, saved.TextSummary)
	})

	s.Run("Missing summary", func() {
		_, err := s.adapter.FindSummary(ctx, aProposition.ID+1)
		s.Require().ErrorIs(err, proptext.ErrNotFound)
	})
}

func (s *StoreTestSuite) TestSaveSummaries_UnknownProposition() {
	ctx, cancel := testContext()
	defer cancel()

	err := s.adapter.SaveSummaries(ctx, gen.Summary(proptext.PropositionID(42)))
	s.Require().Error(err)
}

func (s *StoreTestSuite) TestSaveTopics() {
	ctx, cancel := testContext()
	defer cancel()

	aProposition := gen.Proposition(proptexttest.WithPropositionText("Texto"))
	s.Require().NoError(s.adapter.SavePropositions(ctx, aProposition))

	first := proptext.TopicClassification{PropositionID: aProposition.ID, Topic: "Educação"}
	s.Require().NoError(s.adapter.SaveTopics(ctx, first))

	saved, err := s.adapter.FindTopic(ctx, aProposition.ID)
	s.Require().NoError(err)
	s.Equal(first, saved)

	second := proptext.TopicClassification{PropositionID: aProposition.ID, Topic: "Cultura"}
	s.Require().NoError(s.adapter.SaveTopics(ctx, second))

	saved, err = s.adapter.FindTopic(ctx, aProposition.ID)
	s.Require().NoError(err)
	s.Equal(second, saved)

	_, err = s.adapter.FindTopic(ctx, aProposition.ID+1)
	s.Require().ErrorIs(err, proptext.ErrNotFound)
}

func (s *StoreTestSuite) TestSaveWordClouds() {
	ctx, cancel := testContext()
	defer cancel()

	aProposition := gen.Proposition(proptexttest.WithPropositionText("Texto"))
	s.Require().NoError(s.adapter.SavePropositions(ctx, aProposition))

	cloud := proptext.WordCloud{
		PropositionID: aProposition.ID,
		Words: []proptext.WordFrequency{
			{Word: "lei", Frequency: 5},
			{Word: "saúde", Frequency: 3},
			{Word: "escola", Frequency: 3},
		},
	}
	s.Require().NoError(s.adapter.SaveWordClouds(ctx, cloud))

	saved, err := s.adapter.FindWordCloud(ctx, aProposition.ID)
	s.Require().NoError(err)
	s.Equal(proptext.WordCloud{
		PropositionID: aProposition.ID,
		Words: []proptext.WordFrequency{
			{Word: "lei", Frequency: 5},
			{Word: "escola", Frequency: 3},
			{Word: "saúde", Frequency: 3},
		},
	}, saved)

	replaced := proptext.WordCloud{
		PropositionID: aProposition.ID,
		Words:         []proptext.WordFrequency{{Word: "trânsito", Frequency: 2}},
	}
	s.Require().NoError(s.adapter.SaveWordClouds(ctx, replaced))

	saved, err = s.adapter.FindWordCloud(ctx, aProposition.ID)
	s.Require().NoError(err)
	s.Equal(replaced, saved)

	_, err = s.adapter.FindWordCloud(ctx, aProposition.ID+1)
	s.Require().ErrorIs(err, proptext.ErrNotFound)
}

func (s *StoreTestSuite) TestListPropositions_WithoutAnalysis() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		analyzed   = gen.Proposition(proptexttest.WithPropositionID(1), proptexttest.WithPropositionText("Texto"))
		summarized = gen.Proposition(proptexttest.WithPropositionID(2), proptexttest.WithPropositionText("Texto"))
		untouched  = gen.Proposition(proptexttest.WithPropositionID(3), proptexttest.WithPropositionText("Texto"))
	)
	s.Require().NoError(s.adapter.SavePropositions(ctx, analyzed, summarized, untouched))

	s.Require().NoError(s.adapter.SaveSummaries(ctx, gen.Summary(analyzed.ID), gen.Summary(summarized.ID)))
	s.Require().NoError(s.adapter.SaveTopics(ctx, proptext.TopicClassification{PropositionID: analyzed.ID, Topic: gen.Topic()}))
	s.Require().NoError(s.adapter.SaveWordClouds(ctx, proptext.WordCloud{
		PropositionID: analyzed.ID,
		Words:         []proptext.WordFrequency{{Word: "texto", Frequency: 1}},
	}))

	byID := proptext.SortParams{By: `p."id"`, Order: proptext.SortOrderAsc}

	tests := []struct {
		name     string
		filter   proptext.PropositionFilter
		expected []*proptext.Proposition
	}{
		{"without summary", proptext.PropositionFilter{WithoutSummary: true}, []*proptext.Proposition{untouched}},
		{"without topic", proptext.PropositionFilter{WithoutTopic: true}, []*proptext.Proposition{summarized, untouched}},
		{"without word cloud", proptext.PropositionFilter{WithoutWordCloud: true}, []*proptext.Proposition{summarized, untouched}},
		{
			"extracted without topic",
			proptext.PropositionFilter{Status: proptext.TextStatusExtracted, WithoutTopic: true, IDs: []proptext.PropositionID{summarized.ID}},
			[]*proptext.Proposition{summarized},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			propositions, err := s.adapter.ListPropositions(ctx, tt.filter, byID)
			s.Require().NoError(err)
			s.Equal(tt.expected, propositions)
		})
	}
}
