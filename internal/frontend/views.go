package frontend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/logger"
)

const sessionCookie = "session_token"

// Views renders the HTML pages on top of the API client.
type Views struct {
	client *Client
}

// NewViews creates the frontend view handlers.
func NewViews(client *Client) *Views {
	return &Views{client: client}
}

// Register mounts the frontend routes on the router.
func (v *Views) Register(router *gin.Engine) {
	router.GET("/", v.Index)
	router.GET("/register", v.RegisterForm)
	router.POST("/register", v.RegisterSubmit)
	router.GET("/login", v.LoginForm)
	router.POST("/login", v.LoginSubmit)
	router.GET("/logout", v.Logout)
	router.GET("/articles", v.ArticleList)
	router.GET("/articles/:id", v.ArticleDetail)
	router.POST("/articles/:id/comments", v.CommentSubmit)
}

// Index shows the landing page with the latest articles.
func (v *Views) Index(c *gin.Context) {
	articles, err := v.client.ListArticles(c.Request.Context())
	if err != nil {
		v.renderError(c, err)
		return
	}
	if len(articles) > 5 {
		articles = articles[:5]
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Articles": articles,
		"LoggedIn": v.loggedIn(c),
	})
}

// ArticleList shows all visible articles.
func (v *Views) ArticleList(c *gin.Context) {
	articles, err := v.client.ListArticles(c.Request.Context())
	if err != nil {
		v.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "article_list.html", gin.H{
		"Articles": articles,
		"LoggedIn": v.loggedIn(c),
	})
}

// ArticleDetail shows one article with its comments. Comments are only
// visible to signed-in readers because the comment API requires a token.
func (v *Views) ArticleDetail(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		v.renderError(c, domain.ErrArticleNotFound)
		return
	}

	article, err := v.client.GetArticle(c.Request.Context(), id)
	if err != nil {
		v.renderError(c, err)
		return
	}

	var comments []Comment
	token := v.sessionToken(c)
	if token != "" {
		comments, err = v.client.ListComments(c.Request.Context(), token, id)
		if err != nil {
			// An expired session should not hide the article itself.
			logger.Warn("failed to load comments", "article_id", id, "error", err)
			comments = nil
		}
	}

	c.HTML(http.StatusOK, "article_detail.html", gin.H{
		"Article":  article,
		"Comments": comments,
		"LoggedIn": token != "",
	})
}

// CommentSubmit posts a comment and returns to the article page.
func (v *Views) CommentSubmit(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		v.renderError(c, domain.ErrArticleNotFound)
		return
	}

	token := v.sessionToken(c)
	if token == "" {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	content := c.PostForm("content")
	if err := v.client.CreateComment(c.Request.Context(), token, id, content); err != nil {
		v.renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, c.Request.URL.Path[:len(c.Request.URL.Path)-len("/comments")])
}

// RegisterForm shows the registration page.
func (v *Views) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"LoggedIn": v.loggedIn(c)})
}

// RegisterSubmit creates the account and signs the new user in.
func (v *Views) RegisterSubmit(c *gin.Context) {
	input := RegisterInput{
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
	}

	pair, err := v.client.Register(c.Request.Context(), input)
	if err != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{"Error": errorMessage(err)})
		return
	}

	v.setSession(c, pair.Access)
	c.Redirect(http.StatusFound, "/")
}

// LoginForm shows the sign-in page.
func (v *Views) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"LoggedIn": v.loggedIn(c)})
}

// LoginSubmit exchanges credentials for a session.
func (v *Views) LoginSubmit(c *gin.Context) {
	pair, err := v.client.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": errorMessage(err)})
		return
	}

	v.setSession(c, pair.Access)
	c.Redirect(http.StatusFound, "/")
}

// Logout drops the session cookie.
func (v *Views) Logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (v *Views) setSession(c *gin.Context, token string) {
	c.SetCookie(sessionCookie, token, 3600, "/", "", false, true)
}

func (v *Views) sessionToken(c *gin.Context) string {
	token, err := c.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return token
}

func (v *Views) loggedIn(c *gin.Context) bool {
	return v.sessionToken(c) != ""
}

func (v *Views) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var apiErr *domain.Error
	if errors.As(err, &apiErr) {
		status = apiErr.Status
	}
	c.HTML(status, "error.html", gin.H{
		"Message":  errorMessage(err),
		"LoggedIn": v.loggedIn(c),
	})
}

func errorMessage(err error) string {
	var apiErr *domain.Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return "Something went wrong, please try again."
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
