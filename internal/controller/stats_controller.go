package controller

import (
	"lingua_backend/internal/service"
	"lingua_backend/internal/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	AnalyticsService *service.AnalyticsService
	ReportService    *service.ReportService
}

func NewStatsController(analyticsService *service.AnalyticsService, reportService *service.ReportService) *StatsController {
	return &StatsController{
		AnalyticsService: analyticsService,
		ReportService:    reportService,
	}
}

// @Summary 统计概览
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.OverviewStats}
// @Router /api/stats/overview [get]
func (c *StatsController) Overview(ctx *gin.Context) {
	stats, err := c.AnalyticsService.Overview(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 学习者进度列表
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(10)
// @Param sortBy query string false "排序字段 progress/lastUpdated/startedAt" default(progress)
// @Param order query string false "asc/desc" default(desc)
// @Success 200 {object} util.Response{data=model.LearnerRollupPage}
// @Router /api/stats/users [get]
func (c *StatsController) Learners(ctx *gin.Context) {
	query := service.LearnerRollupQuery{
		Page:     util.ParseIntDefault(ctx.Query("page"), 1),
		PageSize: util.ParseIntDefault(ctx.Query("pageSize"), util.DefaultPageSize),
		SortBy:   ctx.Query("sortBy"),
		Order:    ctx.Query("order"),
	}

	page, err := c.AnalyticsService.LearnerRollup(ctx.Request.Context(), query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary 学习者详情
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param learnerId path string true "学习者ID"
// @Success 200 {object} util.Response{data=model.LearnerDetail}
// @Failure 404 {object} util.Response
// @Router /api/stats/users/{learnerId} [get]
func (c *StatsController) LearnerDetail(ctx *gin.Context) {
	detail, err := c.AnalyticsService.LearnerDetail(ctx.Request.Context(), ctx.Param("learnerId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 课程统计
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CourseRollupRow}
// @Router /api/stats/courses [get]
func (c *StatsController) Courses(ctx *gin.Context) {
	rows, err := c.AnalyticsService.CourseRollup(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 最近动态
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param limit query int false "条数" default(10)
// @Success 200 {object} util.Response{data=[]model.Activity}
// @Router /api/stats/activities [get]
func (c *StatsController) Activities(ctx *gin.Context) {
	limit := util.ParseIntDefault(ctx.Query("limit"), util.DefaultRecentSize)

	activities, err := c.AnalyticsService.RecentActivity(ctx.Request.Context(), limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, activities)
}

// @Summary 每日新增与完成趋势
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param days query int false "天数" default(30)
// @Success 200 {object} util.Response{data=[]model.TimeSeriesPoint}
// @Failure 400 {object} util.Response
// @Router /api/stats/timeseries [get]
func (c *StatsController) TimeSeries(ctx *gin.Context) {
	days, err := strconv.Atoi(ctx.DefaultQuery("days", strconv.Itoa(util.DefaultSeriesDays)))
	if err != nil {
		util.BadRequest(ctx, "days must be an integer")
		return
	}

	points, err := c.AnalyticsService.TimeSeries(ctx.Request.Context(), days)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, points)
}

// @Summary 孤立进度记录
// @Description 课程已被删除的进度记录，仅报告
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.OrphanReport}
// @Router /api/stats/orphans [get]
func (c *StatsController) Orphans(ctx *gin.Context) {
	report, err := c.AnalyticsService.OrphanReport(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary 导出统计报表
// @Tags 统计
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /api/stats/export [get]
func (c *StatsController) Export(ctx *gin.Context) {
	f, err := c.ReportService.BuildWorkbook(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	defer f.Close()

	ctx.Header("Content-Disposition", `attachment; filename="`+c.ReportService.Filename()+`"`)
	ctx.Header("Content-Type", util.MimeXLSX)
	ctx.Status(http.StatusOK)
	if err := f.Write(ctx.Writer); err != nil {
		ctx.Error(err)
	}
}
