package store

import (
	"context"
	"errors"
	"time"

	"github.com/camaradados/proptext"
	"github.com/camaradados/proptext/proptexttest"
)

func (s *StoreTestSuite) TestFindProposition() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		author1      = gen.Author()
		author2      = gen.Author()
		aProposition = gen.Proposition(proptexttest.WithPropositionAuthors(author2.ID, author1.ID))
	)

	s.Require().NoError(s.adapter.SaveAuthors(ctx, author1, author2))
	s.Require().NoError(s.adapter.SavePropositions(ctx, aProposition))

	s.Run("Find existing proposition", func() {
		saved, err := s.adapter.FindProposition(ctx, aProposition.ID)
		s.Require().NoError(err)
		s.Equal(aProposition, saved)
	})

	s.Run("Find missing proposition", func() {
		_, err := s.adapter.FindProposition(ctx, aProposition.ID+1)
		s.Require().ErrorIs(err, proptext.ErrNotFound)
	})
}

func (s *StoreTestSuite) TestSavePropositions_Upsert() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		author1      = gen.Author()
		author2      = gen.Author()
		aProposition = gen.Proposition(proptexttest.WithPropositionAuthors(author1.ID, author2.ID))
	)

	s.Require().NoError(s.adapter.SaveAuthors(ctx, author1, author2))
	s.Require().NoError(s.adapter.SavePropositions(ctx, aProposition))

	later := testNow.Add(time.Minute).Truncate(time.Millisecond)
	s.Require().NoError(aProposition.CompleteWithStatus(proptext.TextStatusExtracted, "Art. 1º Esta Lei institui o programa.", "", later))
	aProposition.AuthorIDs = []proptext.AuthorID{author2.ID}
	s.Require().NoError(s.adapter.SavePropositions(ctx, aProposition))

	saved, err := s.adapter.FindProposition(ctx, aProposition.ID)
	s.Require().NoError(err)
	s.Equal(aProposition, saved)
	s.Equal(proptext.TextStatusExtracted, saved.Status)
	s.Equal([]proptext.AuthorID{author2.ID}, saved.AuthorIDs)
	s.True(later.Equal(saved.Updated))
}

func (s *StoreTestSuite) TestSavePropositions_WithoutSubmissionDate() {
	ctx, cancel := testContext()
	defer cancel()

	aProposition := gen.Proposition()
	aProposition.SubmittedAt = time.Time{}
	aProposition.URL = ""

	s.Require().NoError(s.adapter.SavePropositions(ctx, aProposition))

	saved, err := s.adapter.FindProposition(ctx, aProposition.ID)
	s.Require().NoError(err)
	s.True(saved.SubmittedAt.IsZero())
	s.Empty(saved.URL)
}

func (s *StoreTestSuite) TestListPropositions() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		pending   = gen.Proposition(proptexttest.WithPropositionID(1001))
		extracted = gen.Proposition(proptexttest.WithPropositionID(1002), proptexttest.WithPropositionText("Texto"))
		failed    = gen.Proposition(proptexttest.WithPropositionID(1003), proptexttest.WithPropositionStatus(proptext.TextStatusFailed, "404 Not Found"))
		noText    = gen.Proposition(proptexttest.WithPropositionID(1004), proptexttest.WithPropositionStatus(proptext.TextStatusNoText, ""))
	)

	s.Require().NoError(s.adapter.SavePropositions(ctx, pending, extracted, failed, noText))

	s.Run("All propositions", func() {
		propositions, err := s.adapter.ListPropositions(ctx, proptext.PropositionFilter{}, proptext.SortParams{
			By:    `p."id"`,
			Order: proptext.SortOrderAsc,
		})
		s.Require().NoError(err)
		s.Equal([]*proptext.Proposition{pending, extracted, failed, noText}, propositions)
	})

	s.Run("Filter by status", func() {
		propositions, err := s.adapter.ListPropositions(ctx, proptext.PropositionFilter{
			Status: proptext.TextStatusFailed,
		}, proptext.SortParams{})
		s.Require().NoError(err)
		s.Equal([]*proptext.Proposition{failed}, propositions)
	})

	s.Run("Filter by ids", func() {
		propositions, err := s.adapter.ListPropositions(ctx, proptext.PropositionFilter{
			IDs: []proptext.PropositionID{noText.ID, pending.ID, 9999},
		}, proptext.SortParams{By: `p."id"`, Order: proptext.SortOrderDesc})
		s.Require().NoError(err)
		s.Equal([]*proptext.Proposition{noText, pending}, propositions)
	})

	s.Run("Limit", func() {
		propositions, err := s.adapter.ListPropositions(ctx, proptext.PropositionFilter{}, proptext.SortParams{
			By:    `p."id"`,
			Order: proptext.SortOrderDesc,
			Limit: 2,
		})
		s.Require().NoError(err)
		s.Equal([]*proptext.Proposition{noText, failed}, propositions)
	})

	s.Run("Invalid sort", func() {
		_, err := s.adapter.ListPropositions(ctx, proptext.PropositionFilter{}, proptext.SortParams{By: "random()"})
		s.Require().Error(err)
	})
}

func (s *StoreTestSuite) TestSavePropositions_ManyBatches() {
	ctx, cancel := testContext()
	defer cancel()

	propositions := make([]*proptext.Proposition, 0, batchSize+10)
	for i := 0; i < batchSize+10; i++ {
		propositions = append(propositions, gen.Proposition(proptexttest.WithPropositionID(proptext.PropositionID(i+1))))
	}

	s.Require().NoError(s.adapter.SavePropositions(ctx, propositions...))

	saved, err := s.adapter.ListPropositions(ctx, proptext.PropositionFilter{Status: proptext.TextStatusPending}, proptext.SortParams{})
	s.Require().NoError(err)
	s.Len(saved, batchSize+10)
}

func (s *StoreTestSuite) TestTransactional_Rollback() {
	ctx, cancel := testContext()
	defer cancel()

	aProposition := gen.Proposition()

	err := s.adapter.Transactional(ctx, nil, func(ctx context.Context) error {
		if err := s.adapter.SavePropositions(ctx, aProposition); err != nil {
			return err
		}
		return errors.New("boom")
	})
	s.Require().EqualError(err, "boom")

	_, err = s.adapter.FindProposition(ctx, aProposition.ID)
	s.Require().ErrorIs(err, proptext.ErrNotFound)
}
