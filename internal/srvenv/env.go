package srvenv

import (
	"context"
	"fmt"

	"github.com/go-sod/kdrange/internal/cache"
	"github.com/go-sod/kdrange/internal/database"
	"github.com/go-sod/kdrange/internal/index"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	database *database.DB
	cache    cache.Cache
	index    index.ProvideFn
}

func (s *SrvEnv) ProvideIndex() index.ProvideFn {
	return s.index
}

func (s *SrvEnv) Database() *database.DB {
	return s.database
}

func (s *SrvEnv) Cache() cache.Cache {
	return s.cache
}

func WithIndex(fn index.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.index = fn
		return s
	}
}

func WithCache(c cache.Cache) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.cache = c
		return s
	}
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var cacheErr error
	if s.cache != nil {
		cacheErr = s.cache.Close()
	}
	if s.database != nil {
		if err := s.database.Close(ctx); err != nil {
			return err
		}
	}
	if cacheErr != nil {
		return fmt.Errorf("close cache: %w", cacheErr)
	}
	return nil
}
