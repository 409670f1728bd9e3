package models

import (
	"time"
)

type Domain struct {
	ID            uint64    `gorm:"primary_key;autoIncrement" json:"id"`
	Tenant        string    `gorm:"column:tenant;type:varchar(255);NOT NULL" json:"tenant"`
	Domain        string    `gorm:"column:domain;type:varchar(255);NOT NULL;uniqueIndex" json:"domain"`
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamp;DEFAULT:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at;type:timestamp;DEFAULT:current_timestamp" json:"updatedAt"`
	Active        bool      `gorm:"column:active;type:boolean;NOT NULL;DEFAULT:true" json:"active"`
	OrderID       string    `gorm:"column:order_id;type:varchar(255)" json:"orderId"`
	TransactionID string    `gorm:"column:transaction_id;type:varchar(255)" json:"transactionId"`
	ChargedAmount string    `gorm:"column:charged_amount;type:varchar(64)" json:"chargedAmount"`
}

func (Domain) TableName() string {
	return "domains"
}
