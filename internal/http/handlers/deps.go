package handlers

import (
	"github.com/jmoiron/sqlx"

	"itemsvault/internal/config"
	"itemsvault/internal/repos"
	"itemsvault/internal/services"
	"itemsvault/internal/storage"
)

type Deps struct {
	ItemHandler    *ItemHandler
	EnquiryHandler *EnquiryHandler
	PageHandler    *PageHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, files storage.Store, mailer services.MailSender) *Deps {
	itemRepo := repos.NewItemRepo(db)

	catalogSvc := services.NewCatalogService(itemRepo, files)
	enquirySvc := services.NewEnquiryService(itemRepo, mailer)

	return &Deps{
		ItemHandler:    &ItemHandler{Catalog: catalogSvc, Dev: cfg.Development()},
		EnquiryHandler: &EnquiryHandler{Enquiries: enquirySvc, Dev: cfg.Development()},
		PageHandler:    &PageHandler{Catalog: catalogSvc},
	}
}
