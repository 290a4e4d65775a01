package migrate

import (
	"context"

	"loja-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run creates the schema: extensions, tables, functional indexes and FKs.
func Run(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database migration")

	if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Error("failed to enable pgcrypto extension", zap.Error(err))
		return err
	}

	tables := []any{
		&models.Customer{},
		&models.CustomerAddress{},
		&models.CustomerSession{},
		&models.Order{},
		&models.OrderItem{},
		&models.HistoricoStatusEntrega{},
		&models.PaymentNotification{},
	}
	if err := db.WithContext(ctx).AutoMigrate(tables...); err != nil {
		log.Error("failed to migrate tables", zap.Error(err))
		return err
	}

	// Case-insensitive email uniqueness.
	if err := db.WithContext(ctx).Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_customers_email ON customers (lower(email))`,
	).Error; err != nil {
		log.Error("failed to create lower(email) unique index", zap.Error(err))
		return err
	}

	// updated_at trigger for mutable tables.
	if err := db.WithContext(ctx).Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;
DROP TRIGGER IF EXISTS trg_customers_updated ON customers;
CREATE TRIGGER trg_customers_updated BEFORE UPDATE ON customers
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
		log.Error("failed to create updated_at triggers", zap.Error(err))
		return err
	}

	fks := []string{
		`ALTER TABLE customer_addresses
  DROP CONSTRAINT IF EXISTS fk_addresses_customer,
  ADD CONSTRAINT fk_addresses_customer FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE`,
		`ALTER TABLE customer_sessions
  DROP CONSTRAINT IF EXISTS fk_sessions_customer,
  ADD CONSTRAINT fk_sessions_customer FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE`,
		`ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_items_order,
  ADD CONSTRAINT fk_items_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE`,
		`ALTER TABLE historico_status_entrega
  DROP CONSTRAINT IF EXISTS fk_historico_order,
  ADD CONSTRAINT fk_historico_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE`,
	}
	for _, stmt := range fks {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			log.Error("failed to create foreign key", zap.Error(err))
			return err
		}
	}

	log.Info("database migration finished")
	return nil
}
