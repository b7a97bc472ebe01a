package store

import (
	"github.com/camaradados/proptext"
)

func (s *StoreTestSuite) TestSaveAuthors_Upsert() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		author1 = proptext.Author{ID: 204554, Name: "Fulano de Tal", Party: "PT", State: "SP"}
		author2 = proptext.Author{ID: 220593, Name: "Beltrana Souza", Party: "PL", State: "RJ"}
	)

	s.Require().NoError(s.adapter.SaveAuthors(ctx, author1, author2))

	authors, err := s.adapter.ListAuthors(ctx, proptext.SortParams{By: `a."id"`, Order: proptext.SortOrderAsc})
	s.Require().NoError(err)
	s.Equal([]proptext.Author{author1, author2}, authors)

	author1.Party = "PSB"
	s.Require().NoError(s.adapter.SaveAuthors(ctx, author1))

	authors, err = s.adapter.ListAuthors(ctx, proptext.SortParams{By: `a."name"`, Order: proptext.SortOrderDesc, Limit: 1})
	s.Require().NoError(err)
	s.Equal([]proptext.Author{author1}, authors)
}

func (s *StoreTestSuite) TestListAuthors_InvalidSort() {
	ctx, cancel := testContext()
	defer cancel()

	_, err := s.adapter.ListAuthors(ctx, proptext.SortParams{By: "1; drop table author"})
	s.Require().Error(err)
}

func (s *StoreTestSuite) TestSaveAuthors_Empty() {
	ctx, cancel := testContext()
	defer cancel()

	s.Require().NoError(s.adapter.SaveAuthors(ctx))

	authors, err := s.adapter.ListAuthors(ctx, proptext.SortParams{})
	s.Require().NoError(err)
	s.Empty(authors)
}
