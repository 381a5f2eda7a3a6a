package main

import (
	"context"
	"flag"
	"log"

	blog "github.com/goliatone/go-blog"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/google/uuid"
)

// blogimport walks a directory of markdown files and upserts them as feeds,
// keyed by frontmatter alias or filename.
func main() {
	var (
		dir    = flag.String("dir", "", "directory of markdown files to import")
		author = flag.String("author", "", "author user id for imported feeds")
		driver = flag.String("driver", "", "database driver: sqlite, postgres or memory")
		dsn    = flag.String("dsn", "", "database connection string")
	)
	flag.Parse()

	if *dir == "" {
		log.Fatal("blogimport: -dir is required")
	}
	authorID, err := uuid.Parse(*author)
	if err != nil {
		log.Fatalf("blogimport: -author must be a valid user id: %v", err)
	}

	cfg := blog.DefaultConfig()
	cfg.Session.Secret = "import-only"
	cfg.Github.ClientID = "import-only"
	cfg.Github.ClientSecret = "import-only"
	cfg.Features.RSS = false
	cfg.Features.Storage = false
	if *driver != "" {
		cfg.Database.Driver = *driver
		if *driver == "memory" {
			cfg.Database.DSN = ""
		}
	}
	if *dsn != "" {
		cfg.Database.DSN = *dsn
	}

	ctx := context.Background()

	module, err := blog.New(cfg)
	if err != nil {
		log.Fatalf("blogimport: %v", err)
	}
	if db := module.DB(); db != nil {
		if err := blog.RunMigrations(ctx, db); err != nil {
			log.Fatalf("blogimport: %v", err)
		}
		defer db.Close()
	}

	handler, err := markdowncmd.NewImportDirectoryHandler(
		module.Feeds(),
		logging.MarkdownLogger(module.Container().LoggerProvider()),
	)
	if err != nil {
		log.Fatalf("blogimport: %v", err)
	}

	if err := handler.Execute(ctx, markdowncmd.ImportDirectoryCommand{
		Directory: *dir,
		AuthorID:  authorID,
	}); err != nil {
		log.Fatalf("blogimport: import %s: %v", *dir, err)
	}
}
