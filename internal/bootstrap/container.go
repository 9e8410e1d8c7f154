package bootstrap

import (
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/config"
	"github.com/harborline/stafftrack/internal/infra/db"
	"github.com/harborline/stafftrack/internal/infra/logger"
	"github.com/harborline/stafftrack/internal/modules/handler"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/modules/service"
	"github.com/harborline/stafftrack/internal/pkg/rollup"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// rollup basis
	do.Provide(inj, func(i *do.Injector) (rollup.Basis, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return rollup.ParseBasis(cfg.Rollup.AssignedBasis)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.StaffRepo, error) {
		return repo.NewStaffRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ContractRepo, error) {
		return repo.NewContractRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.DeliverableRepo, error) {
		return repo.NewDeliverableRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.AssignmentRepo, error) {
		return repo.NewAssignmentRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TimeEntryRepo, error) {
		return repo.NewTimeEntryRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.StatusUpdateRepo, error) {
		return repo.NewStatusUpdateRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.StaffService, error) {
		return service.NewStaffService(do.MustInvoke[repo.StaffRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ContractService, error) {
		return service.NewContractService(
			do.MustInvoke[repo.ContractRepo](i),
			do.MustInvoke[repo.DeliverableRepo](i),
			do.MustInvoke[rollup.Basis](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.DeliverableService, error) {
		return service.NewDeliverableService(
			do.MustInvoke[repo.DeliverableRepo](i),
			do.MustInvoke[repo.ContractRepo](i),
			do.MustInvoke[rollup.Basis](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AssignmentService, error) {
		return service.NewAssignmentService(
			do.MustInvoke[repo.AssignmentRepo](i),
			do.MustInvoke[repo.DeliverableRepo](i),
			do.MustInvoke[repo.StaffRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.DeliverableRepo](i),
			do.MustInvoke[repo.StaffRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TimeEntryService, error) {
		return service.NewTimeEntryService(
			do.MustInvoke[repo.TimeEntryRepo](i),
			do.MustInvoke[repo.DeliverableRepo](i),
			do.MustInvoke[repo.StaffRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.StatusUpdateService, error) {
		return service.NewStatusUpdateService(
			do.MustInvoke[repo.StatusUpdateRepo](i),
			do.MustInvoke[repo.DeliverableRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ReportService, error) {
		return service.NewReportService(
			do.MustInvoke[repo.ContractRepo](i),
			do.MustInvoke[repo.DeliverableRepo](i),
			do.MustInvoke[rollup.Basis](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.StaffHandler, error) {
		return handler.NewStaffHandler(do.MustInvoke[service.StaffService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ContractHandler, error) {
		return handler.NewContractHandler(do.MustInvoke[service.ContractService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.DeliverableHandler, error) {
		return handler.NewDeliverableHandler(do.MustInvoke[service.DeliverableService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AssignmentHandler, error) {
		return handler.NewAssignmentHandler(do.MustInvoke[service.AssignmentService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TimeEntryHandler, error) {
		return handler.NewTimeEntryHandler(do.MustInvoke[service.TimeEntryService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.StatusUpdateHandler, error) {
		return handler.NewStatusUpdateHandler(do.MustInvoke[service.StatusUpdateService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ReportHandler, error) {
		return handler.NewReportHandler(do.MustInvoke[service.ReportService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ExportHandler, error) {
		return handler.NewExportHandler(
			do.MustInvoke[service.ReportService](i),
			do.MustInvoke[service.TimeEntryService](i),
		), nil
	})

	return inj
}
