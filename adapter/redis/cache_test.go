package redis

import (
	"time"

	"github.com/camaradados/proptext"
)

func (s *RedisTestSuite) TestSetGet() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		url     = "https://www.camara.leg.br/proposicoesWeb/prop_mostrarintegra?codteor=3000001"
		cleaned = time.Date(2025, 11, 6, 10, 31, 15, 123456789, time.UTC)
		entry   = proptext.CachedText{
			Status:  proptext.TextStatusExtracted,
			Text:    "Art. 1º Fica instituído o programa.\nArt. 2º Esta Lei entra em vigor.",
			Config:  "9f2c41d07a3e5b68",
			Cleaned: cleaned,
		}
	)

	_, ok, err := s.adapter.Get(ctx, url)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.adapter.Set(ctx, url, entry))

	cached, ok, err := s.adapter.Get(ctx, url)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(entry, cached)

	ttl, err := s.client.TTL(ctx, s.adapter.key(url)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Hour)
}

func (s *RedisTestSuite) TestSet_Overwrites() {
	ctx, cancel := testContext()
	defer cancel()

	url := "https://example.org/doc.pdf"

	s.Require().NoError(s.adapter.Set(ctx, url, proptext.CachedText{
		Status:  proptext.TextStatusExtracted,
		Text:    "texto antigo",
		Cleaned: time.Now(),
	}))
	s.Require().NoError(s.adapter.Set(ctx, url, proptext.CachedText{
		Status:  proptext.TextStatusNoText,
		Cleaned: time.Now(),
	}))

	cached, ok, err := s.adapter.Get(ctx, url)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(proptext.TextStatusNoText, cached.Status)
	s.Empty(cached.Text)
}

func (s *RedisTestSuite) TestSet_InvalidStatus() {
	ctx, cancel := testContext()
	defer cancel()

	err := s.adapter.Set(ctx, "https://example.org/doc.pdf", proptext.CachedText{Status: "DONE"})
	s.Require().Error(err)
}

func (s *RedisTestSuite) TestGet_Corrupted() {
	ctx, cancel := testContext()
	defer cancel()

	url := "https://example.org/doc.pdf"
	s.Require().NoError(s.client.HSet(ctx, s.adapter.key(url), fieldStatus, "EXTRACTED", fieldCleaned, "yesterday").Err())

	_, _, err := s.adapter.Get(ctx, url)
	s.Require().Error(err)
}
