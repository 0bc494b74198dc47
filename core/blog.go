package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unihumboldt/blog/logging"
)

const DefaultDomain = "@unihumboldt.edu.ve"

// Blog holds the storage backends and implements the operations of the HTTP API on top of them.
// Its methods shadow some methods of the embedded databases and add validation and authorization.
type Blog struct {
	ArticleDB
	UserDB
	Hasher Hasher
	Log    logging.Logger
	Domain string           // required suffix of email addresses at registration
	Now    func() time.Time // optional, for tests

	dummyHash string
}

func (b *Blog) Init() error {

	if b.ArticleDB == nil || b.UserDB == nil {
		return errors.New("storage backend missing")
	}

	if b.Hasher == nil {
		b.Hasher = BcryptHasher{}
	}

	if b.Log == nil {
		b.Log = logging.Discard()
	}

	b.Domain = strings.TrimSpace(b.Domain)
	if b.Domain == "" {
		b.Domain = DefaultDomain
	}

	var err error
	b.dummyHash, err = b.Hasher.Hash("dummy password")
	if err != nil {
		return fmt.Errorf("error creating dummy hash: %w", err)
	}

	return nil
}

func (b *Blog) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}
