package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/feedbackboard/feedback-client/internal/api"
	"github.com/feedbackboard/feedback-client/internal/feedback"
	"github.com/feedbackboard/feedback-client/internal/models"
	"github.com/feedbackboard/feedback-client/internal/session"
	"github.com/feedbackboard/feedback-client/pkg/config"
)

type app struct {
	cfg     *config.Config
	session *session.Store
	client  *api.Client
	repo    *feedback.Repository
	in      *bufio.Scanner
}

func main() {
	cfg := config.Load()
	if cfg.Env == "development" {
		log.SetLevel(log.DebugLevel)
	}

	sess := session.NewStore()
	client := api.New(cfg.APIBaseURL, sess, cfg.RequestTimeout)

	a := &app{
		cfg:     cfg,
		session: sess,
		client:  client,
		repo:    feedback.NewRepository(client, sess),
		in:      bufio.NewScanner(os.Stdin),
	}
	a.run()
}

func (a *app) run() {
	fmt.Println("Feedback Board. Digite 'help' para ver os comandos.")
	for {
		fmt.Print("> ")
		if !a.in.Scan() {
			return
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		args := strings.Fields(line)
		cmd, args := args[0], args[1:]

		ctx := context.Background()
		switch cmd {
		case "help":
			a.help()
		case "login":
			a.login(ctx)
		case "register":
			a.register(ctx)
		case "logout":
			a.session.Logout()
			fmt.Println("Sessão encerrada.")
		case "list":
			a.list(ctx)
		case "add":
			a.add(ctx)
		case "edit":
			a.edit(ctx, args)
		case "delete":
			a.delete(ctx, args)
		case "like":
			a.like(ctx, args)
		case "comments":
			a.comments(ctx, args)
		case "comment":
			a.comment(ctx, args)
		case "uncomment":
			a.uncomment(ctx, args)
		case "quit", "exit":
			return
		default:
			fmt.Printf("Comando desconhecido: %s\n", cmd)
		}
	}
}

func (a *app) help() {
	fmt.Println(`Comandos:
  login                 autenticar com email e senha
  register              criar uma conta
  logout                encerrar a sessão
  list                  listar meus feedbacks
  add                   adicionar um feedback
  edit <id>             editar um feedback meu
  delete <id>           deletar um feedback meu
  like <id>             curtir um feedback
  comments <id>         listar comentários de um feedback
  comment <id> <texto>  comentar em um feedback
  uncomment <fid> <cid> deletar um comentário meu
  quit                  sair`)
}

func (a *app) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) login(ctx context.Context) {
	email := a.prompt("Email")
	password := a.prompt("Senha")

	auth, err := a.client.Login(ctx, email, password)
	if err != nil {
		fmt.Println(api.UserMessage(err, "Erro ao fazer login."))
		return
	}
	a.session.Login(auth.Token, auth.User)
	fmt.Printf("Login realizado com sucesso! Bem-vindo, %s\n", auth.User.Name)
}

func (a *app) register(ctx context.Context) {
	name := a.prompt("Nome")
	email := a.prompt("Email")
	password := a.prompt("Senha")

	auth, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		fmt.Println(api.UserMessage(err, "Erro ao fazer cadastro."))
		return
	}
	a.session.Login(auth.Token, auth.User)
	fmt.Printf("Cadastro realizado com sucesso! Bem-vindo, %s\n", auth.User.Name)
}

func (a *app) list(ctx context.Context) {
	if err := a.repo.Refresh(ctx); err != nil {
		fmt.Println(api.UserMessage(err, "Erro ao obter feedbacks."))
		return
	}

	items := a.repo.Items()
	if len(items) == 0 {
		fmt.Println("Nenhum feedback encontrado.")
		return
	}

	userID := ""
	if user, ok := a.session.CurrentUser(); ok {
		userID = user.ID
	}
	for _, fb := range items {
		a.printFeedback(fb, userID)
	}
}

func (a *app) printFeedback(fb models.Feedback, userID string) {
	owner := ""
	if feedback.CanMutate(fb, userID) {
		owner = " [meu]"
	}
	fmt.Printf("%s  %s — %s%s\n", fb.ID, fb.Store, fb.Title, owner)
	fmt.Printf("    Produto: %s\n", fb.Product)
	fmt.Printf("    %s\n", fb.Description)
	fmt.Printf("    Curtidas: %d\n", fb.Likes)
	for _, m := range fb.Media {
		fmt.Printf("    [%s] %s\n", m.Type, m.ResolveURL(a.cfg.MediaBaseURL))
	}
}

func (a *app) readFeedbackFields() (store, product, title, description string) {
	store = a.prompt("Loja")
	product = a.prompt("Produto")
	title = a.prompt("Título")
	description = a.prompt("Descrição")
	return
}

func (a *app) readMediaFiles() []models.MediaFile {
	var files []models.MediaFile
	for {
		path := a.prompt("Mídia (caminho do arquivo, vazio para terminar)")
		if path == "" {
			return files
		}
		f, err := os.Open(path)
		if err != nil {
			fmt.Printf("Não foi possível abrir %s: %v\n", path, err)
			continue
		}
		files = append(files, models.MediaFile{Name: f.Name(), Content: f})
	}
}

func (a *app) add(ctx context.Context) {
	store, product, title, description := a.readFeedbackFields()
	payload := models.CreateFeedbackRequest{
		Store:       store,
		Product:     product,
		Title:       title,
		Description: description,
		Media:       a.readMediaFiles(),
	}

	if _, err := a.repo.Create(ctx, payload); err != nil {
		fmt.Println(api.UserMessage(err, "Erro ao adicionar feedback."))
		return
	}
	fmt.Println("Feedback adicionado com sucesso!")
}

func (a *app) requireOwned(id string) (models.Feedback, bool) {
	fb, ok := a.repo.Get(id)
	if !ok {
		fmt.Println("Feedback não encontrado. Use 'list' primeiro.")
		return models.Feedback{}, false
	}
	user, _ := a.session.CurrentUser()
	if !feedback.CanMutate(fb, user.ID) {
		fmt.Println("Apenas o autor pode alterar este feedback.")
		return models.Feedback{}, false
	}
	return fb, true
}

func (a *app) edit(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Uso: edit <id>")
		return
	}
	fb, ok := a.requireOwned(args[0])
	if !ok {
		return
	}

	fmt.Println("Deixe em branco para manter o valor atual.")
	store, product, title, description := a.readFeedbackFields()
	payload := models.UpdateFeedbackRequest{
		Store:       orDefault(store, fb.Store),
		Product:     orDefault(product, fb.Product),
		Title:       orDefault(title, fb.Title),
		Description: orDefault(description, fb.Description),
		Media:       a.readMediaFiles(),
	}

	if _, err := a.repo.Update(ctx, fb.ID, payload); err != nil {
		fmt.Println(api.UserMessage(err, "Erro ao atualizar feedback."))
		return
	}
	fmt.Println("Feedback atualizado com sucesso!")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (a *app) delete(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Uso: delete <id>")
		return
	}
	fb, ok := a.requireOwned(args[0])
	if !ok {
		return
	}

	confirm := func() bool {
		answer := a.prompt("Tem certeza que deseja deletar este feedback? (s/n)")
		return strings.EqualFold(answer, "s") || strings.EqualFold(answer, "sim")
	}
	if err := a.repo.Delete(ctx, fb.ID, confirm); err != nil {
		if err == feedback.ErrNotConfirmed {
			return
		}
		fmt.Println(api.UserMessage(err, "Erro ao deletar feedback."))
		return
	}
	fmt.Println("Feedback deletado com sucesso!")
}

func (a *app) like(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Uso: like <id>")
		return
	}
	fb, err := a.repo.Like(ctx, args[0])
	if err != nil {
		if err == feedback.ErrActionPending {
			return
		}
		fmt.Println(api.UserMessage(err, "Erro ao curtir feedback."))
		return
	}
	fmt.Printf("Curtida realizada com sucesso! Curtidas: %d\n", fb.Likes)
}

func (a *app) comments(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Uso: comments <id>")
		return
	}
	comments, err := a.repo.Comments(args[0]).Load(ctx)
	if err != nil {
		fmt.Println(api.UserMessage(err, "Erro ao obter comentários."))
		return
	}
	if len(comments) == 0 {
		fmt.Println("Nenhum comentário ainda.")
		return
	}
	for _, c := range comments {
		fmt.Printf("%s  %s\n", c.ID, c.Text)
	}
}

func (a *app) comment(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Uso: comment <id> <texto>")
		return
	}
	id, text := args[0], strings.Join(args[1:], " ")
	if err := a.repo.Comments(id).Add(ctx, text); err != nil {
		fmt.Println(api.UserMessage(err, "Erro ao adicionar comentário."))
		return
	}
	fmt.Println("Comentário adicionado com sucesso!")
}

func (a *app) uncomment(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("Uso: uncomment <feedback-id> <comentario-id>")
		return
	}
	if err := a.repo.Comments(args[0]).Delete(ctx, args[1]); err != nil {
		fmt.Println(api.UserMessage(err, "Erro ao deletar comentário."))
		return
	}
	fmt.Println("Comentário deletado com sucesso!")
}
