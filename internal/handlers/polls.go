package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/pollboard/backend/internal/export"
	"github.com/emilythestrangee/pollboard/backend/internal/middleware"
	"github.com/emilythestrangee/pollboard/backend/internal/models"
	"github.com/emilythestrangee/pollboard/backend/internal/service"
	"github.com/emilythestrangee/pollboard/backend/internal/storage"
)

type PollHandler struct {
	polls     *service.PollService
	votes     *service.VoteService
	reactions *service.ReactionService
	comments  *service.CommentService
	files     storage.FileStore
}

func NewPollHandler(
	polls *service.PollService,
	votes *service.VoteService,
	reactions *service.ReactionService,
	comments *service.CommentService,
	files storage.FileStore,
) *PollHandler {
	return &PollHandler{polls: polls, votes: votes, reactions: reactions, comments: comments, files: files}
}

// identityFrom resolves the acting party: the token's user when present,
// otherwise a guest keyed on the submitted email.
func identityFrom(c *gin.Context, email string) service.Identity {
	if userID := middleware.CurrentUserID(c); userID != 0 {
		return service.UserIdentity(userID)
	}
	return service.GuestIdentity(email)
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// GetPolls returns the public listing with optional search, category and
// sort filters, plus site-wide stats.
func (h *PollHandler) GetPolls(c *gin.Context) {
	filter := service.ListFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.DefaultQuery("sort", "trending"),
	}

	polls, err := h.polls.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.polls.Stats()
	if err != nil {
		respondError(c, err)
		return
	}

	if polls == nil {
		polls = []models.Poll{}
	}

	c.JSON(http.StatusOK, gin.H{
		"polls":      polls,
		"categories": models.PollCategories,
		"stats":      stats,
	})
}

// GetPoll returns one poll with its options, tally, reactions, comments
// and the viewer's own vote/reaction state.
func (h *PollHandler) GetPoll(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		return
	}
	viewerID := middleware.CurrentUserID(c)

	poll, err := h.polls.Get(pollID, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	options, err := h.polls.Options(pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	tally, err := h.polls.Tally(pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	reactionCounts, err := h.reactions.Counts(pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.comments.ListTopLevel(pollID)
	if err != nil {
		respondError(c, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	userVoted := false
	userReaction := ""
	if viewerID != 0 {
		identity := service.UserIdentity(viewerID)
		if userVoted, err = h.votes.HasVoted(pollID, identity); err != nil {
			respondError(c, err)
			return
		}
		if userReaction, err = h.reactions.UserReaction(pollID, identity); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"poll":          poll,
		"options":       options,
		"tally":         tally,
		"reactions":     reactionCounts,
		"comments":      comments,
		"user_voted":    userVoted,
		"user_reaction": userReaction,
		"is_expired":    poll.ExpiresAt != nil && !poll.ExpiresAt.After(time.Now().UTC()),
	})
}

// CreatePoll creates a poll from a multipart form (PROTECTED)
func (h *PollHandler) CreatePoll(c *gin.Context) {
	creatorID := middleware.CurrentUserID(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form"})
		return
	}

	customHours, _ := strconv.Atoi(c.PostForm("custom_hours"))
	input := service.CreatePollInput{
		Title:             c.PostForm("title"),
		Description:       c.PostForm("description"),
		Category:          c.PostForm("category"),
		Options:           form.Value["options[]"],
		IsMasked:          c.PostForm("is_masked") != "",
		IsAnonymousVoting: c.PostForm("is_anonymous_voting") != "",
		Expiration:        c.PostForm("expiration"),
		CustomHours:       customHours,
		ScheduledFor:      c.PostForm("scheduled_date"),
	}

	// Poll image and per-option images are stored through the file
	// store; only the returned references go into the database.
	if files := form.File["poll_image"]; len(files) > 0 {
		ref, err := h.files.Save("polls", files[0])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		input.Image = &ref
	}
	for _, file := range form.File["option_images[]"] {
		if file == nil {
			input.OptionImages = append(input.OptionImages, nil)
			continue
		}
		ref, err := h.files.Save("polls", file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		input.OptionImages = append(input.OptionImages, &ref)
	}

	poll, err := h.polls.Create(creatorID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, poll)
}

// CastVote records a vote on a poll. Authenticated users vote as
// themselves; guests must supply an email in the body.
func (h *PollHandler) CastVote(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input models.CastVoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an option"})
		return
	}

	identity := identityFrom(c, input.Email)
	vote, err := h.votes.Cast(pollID, input.OptionID, identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vote recorded successfully",
		"vote_id": vote.ID,
	})
}

// React toggles a reaction on a poll.
func (h *PollHandler) React(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input models.ReactRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := identityFrom(c, input.Email)
	outcome, err := h.reactions.React(pollID, identity, input.ReactionType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "action": outcome})
}

// GetReactions returns the per-type reaction counts for a poll.
func (h *PollHandler) GetReactions(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		return
	}

	counts, err := h.reactions.Counts(pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// ExportResults streams the poll results as a PDF attachment.
func (h *PollHandler) ExportResults(c *gin.Context) {
	pollID, ok := pathID(c, "id")
	if !ok {
		return
	}

	poll, err := h.polls.Get(pollID, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	options, err := h.polls.Options(pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	tally, err := h.polls.Tally(pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	doc, err := export.ResultsPDF(export.Snapshot{Poll: poll, Options: options, Tally: tally})
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("poll_%d_results.pdf", pollID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", doc)
}
