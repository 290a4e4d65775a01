package repository

import "gorm.io/gorm"

type Repository struct {
	DB            *gorm.DB
	Customers     CustomerRepo
	Sessions      SessionRepo
	Addresses     AddressRepo
	Orders        OrderRepo
	History       HistoryRepo
	Notifications NotificationRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:            db,
		Customers:     NewCustomerRepo(db),
		Sessions:      NewSessionRepo(db),
		Addresses:     NewAddressRepo(db),
		Orders:        NewOrderRepo(db),
		History:       NewHistoryRepo(db),
		Notifications: NewNotificationRepo(db),
	}
}
