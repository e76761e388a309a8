package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio-chat/chat"
)

type askRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *server) handleIndex(c *gin.Context) {
	catalog := s.assistant.Catalog()
	suggestions := chat.NewSuggestions(catalog)

	c.HTML(http.StatusOK, "index.html", gin.H{
		"name":        ProfileName,
		"title":       ProfileTitle,
		"about":       AboutMe,
		"intro":       IntroLines,
		"links":       SocialLinks,
		"greeting":    catalog.Greeting(),
		"suggestions": suggestions.Current(),
		"queue":       suggestions.Queue(),
		"used":        suggestions.Used(),
	})
}

// handleChat answers the free-text form. Blank submissions are ignored.
func (s *server) handleChat(c *gin.Context) {
	reply, err := s.assistant.Ask(c.PostForm("message"))
	if errors.Is(err, chat.ErrBlankInput) {
		c.Status(http.StatusNoContent)
		return
	}

	suggestions := chat.RestoreSuggestions(s.assistant.Catalog(), c.PostFormArray("queue"), c.PostFormArray("used"))
	s.renderExchange(c, reply, suggestions)
}

func (s *server) handleSuggestion(c *gin.Context) {
	question := c.PostForm("question")
	reply, err := s.assistant.AskSuggested(question)
	if err != nil {
		c.HTML(http.StatusBadRequest, "chat-error.html", gin.H{
			"error": "That question isn't one I know. Try one of the suggestions.",
		})
		return
	}

	suggestions := chat.RestoreSuggestions(s.assistant.Catalog(), c.PostFormArray("queue"), c.PostFormArray("used"))
	suggestions.Use(question)
	s.renderExchange(c, reply, suggestions)
}

func (s *server) renderExchange(c *gin.Context, reply chat.Reply, suggestions *chat.Suggestions) {
	s.recordReply(reply)
	c.HTML(http.StatusOK, "chat-exchange.html", gin.H{
		"reply":       reply,
		"suggestions": suggestions.Current(),
		"queue":       suggestions.Queue(),
		"used":        suggestions.Used(),
		"oob":         true,
	})
}

func (s *server) handleAPIAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := s.assistant.Ask(req.Message)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.recordReply(reply)
	c.JSON(http.StatusOK, reply)
}

func (s *server) handleAPIQuestions(c *gin.Context) {
	catalog := s.assistant.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"greeting":  catalog.Greeting(),
		"questions": catalog.Questions(),
	})
}

func (s *server) recordReply(reply chat.Reply) {
	s.log.Debug("Answered", "topic", reply.Topic, "matched", reply.Matched, "score", reply.Score, "source", reply.Source)
	if s.analytics != nil {
		go s.analytics.RecordChat(reply)
	}
}
