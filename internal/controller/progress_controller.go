package controller

import (
	"lingua_backend/internal/model"
	"lingua_backend/internal/service"
	"lingua_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const idempotencyHeader = "Idempotency-Key"

type ProgressController struct {
	ProgressService *service.ProgressService
	ExamService     *service.ExamService
}

func NewProgressController(progressService *service.ProgressService, examService *service.ExamService) *ProgressController {
	return &ProgressController{
		ProgressService: progressService,
		ExamService:     examService,
	}
}

// @Summary 获取学习进度
// @Description 获取学习者在某门课程上的进度，不存在时自动创建
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Param learnerId path string true "学习者ID"
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=model.ProgressRecord}
// @Failure 404 {object} util.Response
// @Router /api/results/progress/{learnerId}/{courseId} [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	rec, err := c.ProgressService.GetProgress(ctx.Request.Context(), ctx.Param("learnerId"), ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// @Summary 更新词汇进度
// @Description 上报已学/已掌握词汇的绝对数量
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param learnerId path string true "学习者ID"
// @Param courseId path string true "课程ID"
// @Param body body service.VocabularyUpdate true "词汇进度"
// @Success 200 {object} util.Response{data=model.ProgressRecord}
// @Failure 400 {object} util.Response
// @Router /api/results/progress/{learnerId}/{courseId}/vocabulary [put]
func (c *ProgressController) UpdateVocabulary(ctx *gin.Context) {
	var req service.VocabularyUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rec, err := c.ProgressService.UpdateVocabularyProgress(ctx.Request.Context(), ctx.Param("learnerId"), ctx.Param("courseId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// @Summary 更新练习进度
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param learnerId path string true "学习者ID"
// @Param courseId path string true "课程ID"
// @Param body body service.ExerciseUpdate true "练习进度"
// @Success 200 {object} util.Response{data=model.ProgressRecord}
// @Failure 400 {object} util.Response
// @Router /api/results/progress/{learnerId}/{courseId}/exercises [put]
func (c *ProgressController) UpdateExercises(ctx *gin.Context) {
	var req service.ExerciseUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rec, err := c.ProgressService.UpdateExerciseProgress(ctx.Request.Context(), ctx.Param("learnerId"), ctx.Param("courseId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// @Summary 记录学习时长
// @Description 累加学习时长与次数，并更新连续学习天数
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param learnerId path string true "学习者ID"
// @Param courseId path string true "课程ID"
// @Param body body service.StudySession true "学习时长（分钟）"
// @Success 200 {object} util.Response{data=model.ProgressRecord}
// @Router /api/results/progress/{learnerId}/{courseId}/sessions [post]
func (c *ProgressController) RecordSession(ctx *gin.Context) {
	var req service.StudySession
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rec, err := c.ProgressService.RecordStudySession(ctx.Request.Context(), ctx.Param("learnerId"), ctx.Param("courseId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// @Summary 提交考试结果
// @Description 追加一次考试记录，答对 8 题及以上直接完成课程。可通过 Idempotency-Key 头防止重复提交
// @Tags 考试
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param learnerId path string true "学习者ID"
// @Param courseId path string true "课程ID"
// @Param Idempotency-Key header string false "提交去重键"
// @Param body body model.ExamSubmission true "考试结果"
// @Success 200 {object} util.Response{data=model.ProgressRecord}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/results/exam/{learnerId}/{courseId} [post]
func (c *ProgressController) SubmitExam(ctx *gin.Context) {
	var req model.ExamSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if key := ctx.GetHeader(idempotencyHeader); key != "" {
		req.SubmissionKey = key
	}

	rec, err := c.ExamService.SubmitExam(ctx.Request.Context(), ctx.Param("learnerId"), ctx.Param("courseId"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}
