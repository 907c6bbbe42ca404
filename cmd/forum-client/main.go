package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/pribylovaa/go-forum-client/internal/config"
	"github.com/pribylovaa/go-forum-client/internal/models"
	"github.com/pribylovaa/go-forum-client/internal/pkg/log"
	"github.com/pribylovaa/go-forum-client/internal/service/comments"
	"github.com/pribylovaa/go-forum-client/internal/service/reactions"
	"github.com/pribylovaa/go-forum-client/internal/service/session"
	"github.com/pribylovaa/go-forum-client/internal/storage"
	filestore "github.com/pribylovaa/go-forum-client/internal/storage/file"
	memstore "github.com/pribylovaa/go-forum-client/internal/storage/memory"
	"github.com/pribylovaa/go-forum-client/internal/transport/rest"
)

const usage = `forum-client — консольный клиент форума.

Команды:
  register <email> <username> <password>   регистрация аккаунта
  login <email> <password>                 вход
  logout                                   выход
  me                                       текущий профиль
  posts                                    лента постов
  comments <post-id>                       дерево комментариев поста
  comment <post-id> <text>                 корневой комментарий
  reply <post-id> <comment-id> <text>      ответ на комментарий
  delete <post-id> <comment-id>            удаление комментария с поддеревом
  like <post-id> | dislike <post-id>       реакции на пост
`

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.MustLoad(configPath)

	lg := log.Setup(cfg.Env)
	slog.SetDefault(lg)
	lg.Debug("starting client", "env", cfg.Env, "transport", cfg.Auth.Transport)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()
	ctx := log.Into(rootCtx, lg)

	// Хранилище токенов нужно только bearer-режиму: с файлом пара
	// переживает перезапуск, без файла живёт в памяти процесса.
	var tokens storage.TokenStore
	if cfg.Auth.Transport == config.TransportBearer {
		if cfg.Auth.TokenFile != "" {
			fs, err := filestore.New(cfg.Auth.TokenFile)
			if err != nil {
				lg.Error("token_store_init_failed", slog.String("err", err.Error()))
				os.Exit(1)
			}
			tokens = fs
		} else {
			tokens = memstore.New()
		}
	}

	client, err := rest.New(cfg, tokens)
	if err != nil {
		lg.Error("rest_client_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	sessions := session.New(client)
	// Неудачный refresh сбрасывает сессию принудительно; клиент и менеджер
	// связываются здесь, а не напрямую.
	client.OnSessionExpired(sessions.Invalidate)

	commentsSvc := comments.New(client)
	reactionsSvc := reactions.New(client)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	app := &app{
		client:    client,
		sessions:  sessions,
		comments:  commentsSvc,
		reactions: reactionsSvc,
	}

	if err := app.run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	client    *rest.Client
	sessions  *session.Manager
	comments  *comments.Service
	reactions *reactions.Service
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		if len(args) != 3 {
			return fmt.Errorf("usage: register <email> <username> <password>")
		}
		if err := a.client.Register(ctx, rest.RegisterInput{Email: args[0], Username: args[1], Password: args[2]}); err != nil {
			return err
		}
		fmt.Println("registered; use `login` to sign in")
		return nil

	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		if err := a.sessions.Login(ctx, args[0], args[1]); err != nil {
			return err
		}
		s := a.sessions.Current()
		fmt.Printf("logged in as %s (%s)\n", s.User.Username, s.User.Role)
		return nil

	case "logout":
		a.sessions.Logout(ctx)
		fmt.Println("logged out")
		return nil

	case "me":
		a.sessions.Bootstrap(ctx)
		s := a.sessions.Current()
		if !s.IsAuthenticated {
			fmt.Println("not logged in")
			return nil
		}
		fmt.Printf("%s (%s) role=%s\n", s.User.Username, s.User.Email, s.User.Role)
		if exp, ok := a.client.SessionExpiry(); ok {
			fmt.Printf("access token expires at %s\n", exp.Format("2006-01-02 15:04:05 MST"))
		}
		return nil

	case "posts":
		posts, err := a.client.Posts(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLIKES\tDISLIKES\tTITLE")
		for _, p := range posts {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", p.ID, len(p.LikerIDs), len(p.DislikerIDs), p.Title)
		}
		return w.Flush()

	case "comments":
		if len(args) != 1 {
			return fmt.Errorf("usage: comments <post-id>")
		}
		forest, err := a.comments.LoadTree(ctx, args[0])
		if err != nil {
			return err
		}
		if len(forest) == 0 {
			fmt.Println("no comments")
			return nil
		}
		printForest(forest, 0)
		return nil

	case "comment":
		if len(args) != 2 {
			return fmt.Errorf("usage: comment <post-id> <text>")
		}
		return a.submit(ctx, args[0], "", args[1])

	case "reply":
		if len(args) != 3 {
			return fmt.Errorf("usage: reply <post-id> <comment-id> <text>")
		}
		return a.submit(ctx, args[0], args[1], args[2])

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: delete <post-id> <comment-id>")
		}
		a.sessions.Bootstrap(ctx)
		if _, err := a.comments.LoadTree(ctx, args[0]); err != nil {
			return err
		}
		if err := a.comments.Delete(ctx, a.sessions.Current().User, args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	case "like", "dislike":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <post-id>", cmd)
		}
		react := a.reactions.Like
		if cmd == "dislike" {
			react = a.reactions.Dislike
		}
		counts, err := react(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("likes=%d dislikes=%d\n", counts.Likes, counts.Dislikes)
		return nil

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// submit публикует корневой комментарий или ответ. Дерево поста
// загружается перед отправкой, чтобы политика прикрепления ответа
// считалась по актуальному снапшоту.
func (a *app) submit(ctx context.Context, postID, targetID, text string) error {
	if _, err := a.comments.LoadTree(ctx, postID); err != nil {
		return err
	}

	if targetID != "" {
		if effective, ok := a.comments.ReplyTarget(postID, targetID); ok && effective != targetID {
			fmt.Printf("note: reply will attach to %s (depth limit)\n", effective)
		}
	}

	created, err := a.comments.Submit(ctx, postID, targetID, text)
	if err != nil {
		return err
	}

	fmt.Printf("created %s\n", created.ID)
	return nil
}

func printForest(forest []models.Comment, depth int) {
	for _, n := range forest {
		author := "[deleted account]"
		if n.Author != nil {
			author = n.Author.Username
		}

		fmt.Printf("%s%s  %s  %s\n%s  %s\n",
			strings.Repeat("  ", depth), n.ID, author, n.CreatedAt.Format("2006-01-02 15:04"),
			strings.Repeat("  ", depth), n.Content)

		printForest(n.Replies, depth+1)
	}
}
