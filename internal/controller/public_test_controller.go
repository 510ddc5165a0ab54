package controller

import (
	"skill_matrix_backend/internal/service"
	"skill_matrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// PublicTestController serves shared test links. The assessment id in the path is the credential.
type PublicTestController struct {
	Sessions *service.SessionManager
	Answers  *service.AnswerRecorder
}

func NewPublicTestController(sessions *service.SessionManager, answers *service.AnswerRecorder) *PublicTestController {
	return &PublicTestController{Sessions: sessions, Answers: answers}
}

type PublicAnswerRequest struct {
	QuestionID        string   `json:"questionId" binding:"required"`
	SelectedOptionIDs []string `json:"selectedOptionIds"`
	TextResponse      *string  `json:"textResponse"`
	CodeResponse      *string  `json:"codeResponse"`
	TimeSpentSeconds  *int     `json:"timeSpentSeconds"`
}

// @Summary Open a shared test
// @Description Returns the running session, or the start prompt when the test has not begun
// @Tags public
// @Produce json
// @Param assessmentId path string true "assessment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /public/test/{assessmentId} [get]
func (c *PublicTestController) Get(ctx *gin.Context) {
	state, err := c.Sessions.PublicState(ctx.Request.Context(), ctx.Param("assessmentId"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// @Summary Start a shared test
// @Tags public
// @Produce json
// @Param assessmentId path string true "assessment id"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /public/test/{assessmentId}/start [post]
func (c *PublicTestController) Start(ctx *gin.Context) {
	view, err := c.Sessions.StartExisting(ctx.Request.Context(), ctx.Param("assessmentId"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Answer a question of a shared test
// @Tags public
// @Accept json
// @Produce json
// @Param assessmentId path string true "assessment id"
// @Param body body PublicAnswerRequest true "answer"
// @Success 200 {object} util.Response{data=service.SubmitAnswerResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /public/test/{assessmentId}/answer [post]
func (c *PublicTestController) SubmitAnswer(ctx *gin.Context) {
	var req PublicAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Answers.SubmitAnswer(ctx.Request.Context(), service.SubmitAnswerInput{
		AssessmentID:      ctx.Param("assessmentId"),
		QuestionID:        req.QuestionID,
		SelectedOptionIDs: req.SelectedOptionIDs,
		TextResponse:      req.TextResponse,
		CodeResponse:      req.CodeResponse,
		TimeSpentSeconds:  req.TimeSpentSeconds,
	})
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Submit a shared test
// @Tags public
// @Produce json
// @Param assessmentId path string true "assessment id"
// @Success 200 {object} util.Response{data=service.AssessmentResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /public/test/{assessmentId}/submit [post]
func (c *PublicTestController) Submit(ctx *gin.Context) {
	result, err := c.Sessions.Submit(ctx.Request.Context(), ctx.Param("assessmentId"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Result of a shared test
// @Tags public
// @Produce json
// @Param assessmentId path string true "assessment id"
// @Success 200 {object} util.Response{data=service.AssessmentResult}
// @Failure 404 {object} util.Response
// @Router /public/test/{assessmentId}/result [get]
func (c *PublicTestController) Result(ctx *gin.Context) {
	result, err := c.Sessions.Result(ctx.Request.Context(), ctx.Param("assessmentId"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
