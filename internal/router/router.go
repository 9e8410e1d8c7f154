package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/config"
	"github.com/harborline/stafftrack/internal/middleware"
	"github.com/harborline/stafftrack/internal/modules/handler"
	"github.com/harborline/stafftrack/internal/modules/serializer"
)

type RouterDeps struct {
	Config              *config.Config
	DB                  *gorm.DB
	Log                 *zap.Logger
	StaffHandler        *handler.StaffHandler
	ContractHandler     *handler.ContractHandler
	DeliverableHandler  *handler.DeliverableHandler
	AssignmentHandler   *handler.AssignmentHandler
	TaskHandler         *handler.TaskHandler
	TimeEntryHandler    *handler.TimeEntryHandler
	StatusUpdateHandler *handler.StatusUpdateHandler
	ReportHandler       *handler.ReportHandler
	ExportHandler       *handler.ExportHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.StaffAuth(d.Config, d.DB))

		staff := v1.Group("/staff")
		{
			staff.GET("", d.StaffHandler.ListStaff)
			staff.POST("", d.StaffHandler.CreateStaff)
			staff.GET("/:staff_id", d.StaffHandler.GetStaff)
			staff.PUT("/:staff_id", d.StaffHandler.UpdateStaff)
			staff.DELETE("/:staff_id", d.StaffHandler.DeleteStaff)
		}

		contracts := v1.Group("/contracts")
		{
			contracts.GET("", d.ContractHandler.ListContracts)
			contracts.POST("", d.ContractHandler.CreateContract)
			contracts.GET("/:contract_id", d.ContractHandler.GetContract)
			contracts.PUT("/:contract_id", d.ContractHandler.UpdateContract)
			contracts.DELETE("/:contract_id", d.ContractHandler.DeleteContract)
		}

		deliverables := v1.Group("/deliverables")
		{
			deliverables.GET("", d.DeliverableHandler.ListDeliverables)
			deliverables.POST("", d.DeliverableHandler.CreateDeliverable)
			deliverables.GET("/:deliverable_id", d.DeliverableHandler.GetDeliverable)
			deliverables.PUT("/:deliverable_id", d.DeliverableHandler.UpdateDeliverable)
			deliverables.DELETE("/:deliverable_id", d.DeliverableHandler.DeleteDeliverable)
		}

		assignments := v1.Group("/assignments")
		{
			assignments.GET("", d.AssignmentHandler.ListAssignments)
			assignments.POST("", d.AssignmentHandler.CreateAssignment)
			assignments.GET("/:assignment_id", d.AssignmentHandler.GetAssignment)
			assignments.PUT("/:assignment_id", d.AssignmentHandler.UpdateAssignment)
			assignments.DELETE("/:assignment_id", d.AssignmentHandler.DeleteAssignment)
		}

		tasks := v1.Group("/tasks")
		{
			tasks.GET("", d.TaskHandler.ListTasks)
			tasks.POST("", d.TaskHandler.CreateTask)
			tasks.GET("/:task_id", d.TaskHandler.GetTask)
			tasks.PUT("/:task_id", d.TaskHandler.UpdateTask)
			tasks.DELETE("/:task_id", d.TaskHandler.DeleteTask)
		}

		timeEntries := v1.Group("/time-entries")
		{
			timeEntries.GET("", d.TimeEntryHandler.ListTimeEntries)
			timeEntries.POST("", d.TimeEntryHandler.CreateTimeEntry)
			timeEntries.GET("/:time_entry_id", d.TimeEntryHandler.GetTimeEntry)
			timeEntries.PUT("/:time_entry_id", d.TimeEntryHandler.UpdateTimeEntry)
			timeEntries.DELETE("/:time_entry_id", d.TimeEntryHandler.DeleteTimeEntry)
		}

		statusUpdates := v1.Group("/status-updates")
		{
			statusUpdates.GET("", d.StatusUpdateHandler.ListStatusUpdates)
			statusUpdates.POST("", d.StatusUpdateHandler.CreateStatusUpdate)
			statusUpdates.GET("/:status_update_id", d.StatusUpdateHandler.GetStatusUpdate)
			statusUpdates.PUT("/:status_update_id", d.StatusUpdateHandler.UpdateStatusUpdate)
			statusUpdates.DELETE("/:status_update_id", d.StatusUpdateHandler.DeleteStatusUpdate)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/contracts/:contract_id/burn", d.ReportHandler.ContractBurn)
			reports.GET("/contracts/:contract_id/deliverables", d.ReportHandler.ContractDeliverables)
			reports.GET("/deliverables/:deliverable_id/burn", d.ReportHandler.DeliverableBurn)
			reports.GET("/deliverables/:deliverable_id/status-history", d.ReportHandler.DeliverableStatusHistory)
		}

		exports := v1.Group("/exports")
		{
			exports.GET("/contracts/:contract_id/burn.csv", d.ExportHandler.ContractBurnCSV)
			exports.GET("/contracts/:contract_id/time-entries.csv", d.ExportHandler.ContractTimeEntriesCSV)
		}
	}

	return r
}
