// internal/platform/di/api/container.go
package api

import (
	"context"
	"errors"
	"log"

	dbadapter "stocklot/internal/adapters/out/db"
	fsadapter "stocklot/internal/adapters/out/firestore"
	gcsadapter "stocklot/internal/adapters/out/gcs"
	mailadapter "stocklot/internal/adapters/out/mail"
	usecase "stocklot/internal/application/usecase"
	"stocklot/internal/infra/events"
	shared "stocklot/internal/platform/di/shared"
)

// Container owns the marketplace wiring: repositories, usecases, and the
// notification dispatcher. Infra stays owned by the caller.
type Container struct {
	Infra *shared.Infra

	Bus *events.Bus

	// Repositories
	OfferRepo        *fsadapter.OfferRepositoryFS
	PurchaseRepo     *fsadapter.PurchaseRepositoryFS
	UserRepo         *fsadapter.UserRepositoryFS
	NotificationRepo *fsadapter.NotificationRepositoryFS
	CompanyRepo      *fsadapter.CompanyRepositoryFS
	InventoryTx      *fsadapter.InventoryTxFS
	OfferImageRepo   *gcsadapter.OfferImageRepositoryGCS
	Ledger           usecase.PurchaseLedgerPort // nil when disabled

	// Usecases
	NotificationUC *usecase.NotificationUsecase
	Dispatcher     *usecase.NotificationDispatcher
	WatchlistUC    *usecase.WatchlistUsecase
	ReconcileUC    *usecase.ReconcileUsecase
	RestoreUC      *usecase.RestoreUsecase
	OfferUC        *usecase.OfferUsecase
	PurchaseUC     *usecase.PurchaseUsecase
	CompanyUC      *usecase.CompanyUsecase
	UserUC         *usecase.UserUsecase
}

// NewContainer wires repositories and usecases on top of infra.
func NewContainer(ctx context.Context, infra *shared.Infra) (*Container, error) {
	if infra == nil {
		return nil, errors.New("di.api: infra is nil")
	}
	if infra.Firestore == nil {
		return nil, errors.New("di.api: firestore client is nil")
	}

	c := &Container{
		Infra: infra,
		Bus:   events.NewBus(),
	}

	// ----------------------------
	// Repositories
	// ----------------------------
	c.OfferRepo = fsadapter.NewOfferRepositoryFS(infra.Firestore)
	c.PurchaseRepo = fsadapter.NewPurchaseRepositoryFS(infra.Firestore)
	c.UserRepo = fsadapter.NewUserRepositoryFS(infra.Firestore)
	c.NotificationRepo = fsadapter.NewNotificationRepositoryFS(infra.Firestore)
	c.CompanyRepo = fsadapter.NewCompanyRepositoryFS(infra.Firestore)
	c.InventoryTx = fsadapter.NewInventoryTxFS(infra.Firestore)
	c.OfferImageRepo = gcsadapter.NewOfferImageRepositoryGCS(infra.GCS, infra.OfferImageBucket)

	// optional Postgres reporting mirror
	if infra.LedgerDB != nil && infra.LedgerDB.Client != nil {
		ledger := dbadapter.NewPurchaseLedgerPG(infra.LedgerDB.Client)
		if err := ledger.EnsureSchema(ctx); err != nil {
			log.Printf("[di.api] WARN: ledger schema init failed: %v (ledger disabled)", err)
		} else {
			c.Ledger = ledger
			log.Printf("[di.api] purchase ledger mirror enabled")
		}
	}

	// ----------------------------
	// Notifications
	// ----------------------------
	c.NotificationUC = usecase.NewNotificationUsecase(c.NotificationRepo, c.Bus)

	var mailer usecase.NotificationMailSender
	if infra.SendGridAPIKey != "" && infra.MailFromAddress != "" {
		mailer = mailadapter.NewNotificationMailer(
			mailadapter.NewSendGridClient(infra.SendGridAPIKey),
			infra.MailFromAddress,
		)
		log.Printf("[di.api] high-priority mail copies enabled from=%s", infra.MailFromAddress)
	} else {
		log.Printf("[di.api] mail copies disabled (SendGrid not configured)")
	}
	c.Dispatcher = usecase.NewNotificationDispatcher(c.NotificationUC, c.UserRepo, mailer, 0, 0)

	// ----------------------------
	// Core usecases
	// ----------------------------
	c.WatchlistUC = usecase.NewWatchlistUsecase(c.UserRepo, c.OfferRepo)
	c.ReconcileUC = usecase.NewReconcileUsecase(c.InventoryTx, c.WatchlistUC, c.Dispatcher)
	c.RestoreUC = usecase.NewRestoreUsecase(c.InventoryTx, c.WatchlistUC)
	c.OfferUC = usecase.NewOfferUsecase(c.OfferRepo, c.OfferImageRepo, c.WatchlistUC)
	c.PurchaseUC = usecase.NewPurchaseUsecase(
		c.PurchaseRepo,
		c.OfferRepo,
		c.ReconcileUC,
		c.RestoreUC,
		c.Dispatcher,
		c.Ledger,
	)
	c.CompanyUC = usecase.NewCompanyUsecase(c.CompanyRepo)
	c.UserUC = usecase.NewUserUsecase(c.UserRepo)

	return c, nil
}

// Close stops the dispatcher workers. Infra clients are closed by the
// infra owner.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Dispatcher != nil {
		c.Dispatcher.Close()
	}
	return nil
}
