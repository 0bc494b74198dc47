package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"golang.org/x/term"

	"github.com/unihumboldt/blog/backend"
	"github.com/unihumboldt/blog/config"
	"github.com/unihumboldt/blog/core"
	"github.com/unihumboldt/blog/jsondb"
	"github.com/unihumboldt/blog/logging"
	"github.com/unihumboldt/blog/sqldb"
	"github.com/unihumboldt/blog/util"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the exit code. It does not call os.Exit itself, so deferred functions run.
func run(args []string) int {

	var isInit = len(args) > 0 && args[0] == "init"

	var fs *flag.FlagSet
	var initInsert *bool
	var initEmail, initName, initRole *string

	if isInit {
		args = args[1:]
		fs = flag.NewFlagSet("init", flag.ContinueOnError)
		initInsert = fs.Bool("insert", false, "creates the given user")
		initEmail = fs.String("email", "", "specifies a user `email`")
		initName = fs.String("name", "", "specifies a user display `name`")
		initRole = fs.String("role", core.Viewer.String(), "admin, redactor or viewer")
	} else {
		fs = flag.NewFlagSet("blog", flag.ContinueOnError)
	}

	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	log, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	var ctx = context.Background()

	// storage

	blog, sessionStore, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "could not open storage", "backend", cfg.Backend, "err", err)
		return 1
	}
	defer closeStorage()

	blog.Hasher = core.BcryptHasher{Cost: cfg.BcryptCost}
	blog.Log = log
	blog.Domain = cfg.Domain

	if err := blog.Init(); err != nil {
		log.Error(ctx, "could not initialize", "err", err)
		return 1
	}

	// init

	if isInit {
		if *initInsert {
			if err := insertUser(ctx, blog, *initEmail, *initName, core.Role(*initRole)); err != nil {
				log.Error(ctx, "error creating user", "email", *initEmail, "err", err)
				return 1
			}
			log.Info(ctx, "user created", "email", *initEmail, "role", *initRole)
		}
		return 0
	}

	if cfg.Seed {
		if _, err := blog.Seed(ctx); err != nil {
			log.Error(ctx, "error inserting seed data", "err", err)
			return 1
		}
	}

	var server = &backend.Server{
		Blog:     blog,
		Sessions: core.NewSessions(sessionStore, cfg.CookieName, util.NormalizePrefix(cfg.Base)+"/", cfg.SessionLifetime),
		Log:      log,
		Prefix:   util.NormalizePrefix(cfg.Base),
	}

	if err := listen(ctx, log, server, cfg.Listen, cfg.Base); err != nil {
		log.Error(ctx, "error listening", "err", err)
		return 1
	}
	return 0
}

// openStorage returns a Blog with both databases set, the session store of the backend and a function which closes everything.
func openStorage(ctx context.Context, cfg *config.Config, log logging.Logger) (*core.Blog, scs.Store, func(), error) {

	switch cfg.Backend {

	case config.BackendJSON:

		users, err := jsondb.NewUserDB(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, err
		}
		articles, err := jsondb.NewArticleDB(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, err
		}

		log.Info(ctx, "using json files", "dir", cfg.DataDir)

		var store = memstore.New()
		return &core.Blog{ArticleDB: articles, UserDB: users}, store, store.StopCleanup, nil

	case config.BackendSQL:

		db, driver, err := sqldb.Open(cfg.DB)
		if err != nil {
			return nil, nil, nil, err
		}

		var closeDB = func() {
			log.Info(ctx, "closing database")
			db.Close()
		}

		blog, store, err := sqlStorage(ctx, db, driver)
		if err != nil {
			closeDB()
			return nil, nil, nil, err
		}

		log.Info(ctx, "using database", "driver", driver)
		return blog, store, closeDB, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func sqlStorage(ctx context.Context, db *sql.DB, driver string) (*core.Blog, scs.Store, error) {

	if err := sqldb.Migrate(ctx, db, driver); err != nil {
		return nil, nil, err
	}

	users, err := sqldb.NewUserDB(db)
	if err != nil {
		return nil, nil, err
	}
	articles, err := sqldb.NewArticleDB(db)
	if err != nil {
		return nil, nil, err
	}
	store, err := sqldb.NewSessionStore(db, driver)
	if err != nil {
		return nil, nil, err
	}

	return &core.Blog{ArticleDB: articles, UserDB: users}, store, nil
}

func insertUser(ctx context.Context, blog *core.Blog, email, name string, role core.Role) error {

	fmt.Printf("password for user %s: ", email)
	pass1, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}

	fmt.Printf("repeat password: ")
	pass2, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}

	if !bytes.Equal(pass1, pass2) {
		return errors.New("passwords don't match")
	}

	_, err = blog.InsertUser(ctx, email, name, string(pass1), role)
	return err
}

func listen(ctx context.Context, log logging.Logger, server *backend.Server, addr, base string) error {

	// golang mux recovers from panics, so the program won't crash

	var mux = http.NewServeMux()
	mux.Handle("/", util.StripPrefix(base, server.Handler()))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	log.Info(ctx, "listening", "addr", addr, "base", util.NormalizePrefix(base))

	httpSrv := &http.Server{
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	var sigintChannel = make(chan os.Signal, 1)
	var serveErr = make(chan error, 1)

	go func() {
		// don't panic, we want a graceful shutdown
		if err := httpSrv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM

	select {
	case <-sigintChannel:
	case err := <-serveErr:
		return err
	}

	log.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
