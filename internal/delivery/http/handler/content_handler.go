package handler

import (
	"errors"

	"talentboard/internal/delivery/http/dto"
	"talentboard/internal/delivery/http/middleware"
	"talentboard/internal/domain/content"
	"talentboard/internal/pkg/response"
	"talentboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ContentRequest[I any] interface {
	Input() I
}

// ContentRoute names one collection on the wire and the messages its
// failures carry.
type ContentRoute struct {
	Singular string
	Plural   string

	MsgForbidden    string
	MsgMissing      string
	MsgNotFound     string
	MsgCreateFailed string
	MsgListFailed   string
	MsgGetFailed    string
}

var (
	ProjectsRoute = ContentRoute{
		Singular:        "project",
		Plural:          "projects",
		MsgForbidden:    "Only employers can create projects",
		MsgMissing:      "Title and description are required",
		MsgNotFound:     "Project not found",
		MsgCreateFailed: "Internal server error creating project",
		MsgListFailed:   "Internal server error fetching projects",
		MsgGetFailed:    "Internal server error fetching project",
	}
	PostsRoute = ContentRoute{
		Singular:        "post",
		Plural:          "posts",
		MsgForbidden:    "Only employers can create posts",
		MsgMissing:      "Content is required",
		MsgNotFound:     "Post not found",
		MsgCreateFailed: "Internal server error creating post",
		MsgListFailed:   "Internal server error fetching posts",
		MsgGetFailed:    "Internal server error fetching post",
	}
)

type ContentHandler[T content.Record, I content.Input[T], R ContentRequest[I]] struct {
	uc    *usecase.Content[T, I]
	route ContentRoute
}

type (
	ProjectHandler = ContentHandler[content.Project, content.ProjectInput, dto.CreateProjectRequest]
	PostHandler    = ContentHandler[content.Post, content.PostInput, dto.CreatePostRequest]
)

func NewProjectHandler(uc *usecase.Projects) *ProjectHandler {
	return &ProjectHandler{uc: uc, route: ProjectsRoute}
}

func NewPostHandler(uc *usecase.Posts) *PostHandler {
	return &PostHandler{uc: uc, route: PostsRoute}
}

func (h *ContentHandler[T, I, R]) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	base := "/" + h.route.Plural
	r.Get(base, h.List)
	r.Get(base+"/:id", h.Get)
	r.Post(base, auth, h.Create)
}

func (h *ContentHandler[T, I, R]) Create(c fiber.Ctx) error {
	who, ok := middleware.IdentityFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
	}

	author, err := h.uc.Authorize(c.Context(), who)
	if err != nil {
		return h.createError(err)
	}

	var req R
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidBody, err)
	}

	rec, err := h.uc.Publish(c.Context(), author, req.Input())
	if err != nil {
		return h.createError(err)
	}

	return response.OK(c, fiber.Map{h.route.Singular: rec})
}

func (h *ContentHandler[T, I, R]) createError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, h.route.MsgForbidden, err)
	case errors.Is(err, content.ErrMissingField):
		return middleware.NewAppError(fiber.StatusBadRequest, h.route.MsgMissing, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, h.route.MsgCreateFailed, err)
	}
}

func (h *ContentHandler[T, I, R]) List(c fiber.Ctx) error {
	recs, err := h.uc.List(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, h.route.MsgListFailed, err)
	}
	return response.OK(c, fiber.Map{h.route.Plural: recs})
}

func (h *ContentHandler[T, I, R]) Get(c fiber.Ctx) error {
	rec, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, h.route.MsgNotFound, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, h.route.MsgGetFailed, err)
	}
	return response.OK(c, fiber.Map{h.route.Singular: rec})
}
