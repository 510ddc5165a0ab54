package controller

import (
	"skill_matrix_backend/internal/service"
	"skill_matrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Sessions *service.SessionManager
	Answers  *service.AnswerRecorder
}

func NewAssessmentController(sessions *service.SessionManager, answers *service.AnswerRecorder) *AssessmentController {
	return &AssessmentController{Sessions: sessions, Answers: answers}
}

type StartAssessmentRequest struct {
	EmployeeID     string `json:"employeeId" binding:"required"`
	TestTemplateID string `json:"testTemplateId" binding:"required"`
}

type AssignAssessmentRequest struct {
	EmployeeID     string `json:"employeeId" binding:"required"`
	TestTemplateID string `json:"testTemplateId" binding:"required"`
	Title          string `json:"title"`
}

// @Summary Start an assessment
// @Description Opens a session for the employee, or resumes the one already in progress
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StartAssessmentRequest true "employee and template"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /assessments/start [post]
func (c *AssessmentController) Start(ctx *gin.Context) {
	var req StartAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.Sessions.Start(ctx.Request.Context(), req.EmployeeID, req.TestTemplateID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Assign an assessment
// @Description Creates a Pending assessment to be started later through its public link
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AssignAssessmentRequest true "employee and template"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /assessments/assign [post]
func (c *AssessmentController) Assign(ctx *gin.Context) {
	var req AssignAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Sessions.Assign(ctx.Request.Context(), req.EmployeeID, req.TestTemplateID, req.Title)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// @Summary Continue an assessment
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response{data=service.SessionView}
// @Failure 404 {object} util.Response
// @Router /assessments/{id}/continue [get]
func (c *AssessmentController) Continue(ctx *gin.Context) {
	view, err := c.Sessions.Continue(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Record an answer
// @Description Upserts the answer for one question and grades it when possible
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitAnswerInput true "answer"
// @Success 200 {object} util.Response{data=service.SubmitAnswerResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /assessments/answer [post]
func (c *AssessmentController) SubmitAnswer(ctx *gin.Context) {
	var req service.SubmitAnswerInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Answers.SubmitAnswer(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Submit an assessment
// @Description Finalizes and scores the assessment. Repeated calls return the same result.
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response{data=service.AssessmentResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /assessments/{id}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	result, err := c.Sessions.Submit(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Get an assessment result
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response{data=service.AssessmentResult}
// @Failure 404 {object} util.Response
// @Router /assessments/{id}/result [get]
func (c *AssessmentController) Result(ctx *gin.Context) {
	result, err := c.Sessions.Result(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Get an assessment
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	a, err := c.Sessions.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary List an employee's assessments
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param employeeId path string true "employee id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /assessments/employee/{employeeId} [get]
func (c *AssessmentController) ListByEmployee(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"), 100)

	result, err := c.Sessions.ListByEmployee(ctx.Request.Context(), ctx.Param("employeeId"), page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary List tests available to an employee
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param employeeId path string true "employee id"
// @Success 200 {object} util.Response{data=[]service.AvailableTest}
// @Router /assessments/available/{employeeId} [get]
func (c *AssessmentController) AvailableTests(ctx *gin.Context) {
	tests, err := c.Sessions.AvailableTests(ctx.Request.Context(), ctx.Param("employeeId"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// @Summary Grade a subjective response
// @Description Out-of-band verdict from an external grader. Finished assessments are re-aggregated.
// @Tags grading
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "assessment id"
// @Param questionId path string true "question id"
// @Param body body service.GradePatchInput true "grade"
// @Success 200 {object} util.Response{data=service.GradePatchResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /assessments/{id}/responses/{questionId}/grade [put]
func (c *AssessmentController) GradeResponse(ctx *gin.Context) {
	var req service.GradePatchInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if user := util.GetUserFromContext(ctx); user != nil {
		req.GradedBy = user.EmployeeID
	}

	result, err := c.Answers.ApplyExternalGrade(ctx.Request.Context(), ctx.Param("id"), ctx.Param("questionId"), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
