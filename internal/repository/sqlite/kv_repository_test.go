package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/deutschhub/internal/repository"
	"github.com/vytor/deutschhub/internal/repository/sqlite"
	"github.com/vytor/deutschhub/internal/testutil"
)

type KeyValueRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.KeyValueRepository
}

func (s *KeyValueRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewKeyValueRepository(s.db)
}

func (s *KeyValueRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *KeyValueRepositorySuite) TestGetMissingKey() {
	value, found, err := s.repo.Get(context.Background(), "customVocabulary")
	s.Require().NoError(err)
	s.Assert().False(found)
	s.Assert().Empty(value)
}

func (s *KeyValueRepositorySuite) TestPutOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Put(ctx, "customVocabulary", `[{"german":"Hund"}]`))
	s.Require().NoError(s.repo.Put(ctx, "customVocabulary", `[{"german":"Katze"}]`))

	value, found, err := s.repo.Get(ctx, "customVocabulary")
	s.Require().NoError(err)
	s.Assert().True(found)
	s.Assert().Equal(`[{"german":"Katze"}]`, value)

	var rows int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_store`).Scan(&rows))
	s.Assert().Equal(1, rows)
}

func (s *KeyValueRepositorySuite) TestDeleteIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Put(ctx, "customVocabulary", "[]"))
	s.Require().NoError(s.repo.Put(ctx, "other", "x"))

	s.Require().NoError(s.repo.Delete(ctx, "customVocabulary"))
	s.Require().NoError(s.repo.Delete(ctx, "customVocabulary"))

	_, found, err := s.repo.Get(ctx, "customVocabulary")
	s.Require().NoError(err)
	s.Assert().False(found)

	value, found, err := s.repo.Get(ctx, "other")
	s.Require().NoError(err)
	s.Assert().True(found)
	s.Assert().Equal("x", value)
}

func TestKeyValueRepositorySuite(t *testing.T) {
	suite.Run(t, new(KeyValueRepositorySuite))
}
