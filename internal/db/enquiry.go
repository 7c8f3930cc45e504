package db

const (
	EnquiryStatusNew        = "new"
	EnquiryStatusInProgress = "in_progress"
	EnquiryStatusResolved   = "resolved"
	EnquiryStatusArchived   = "archived"
)

// EnquiryStatuses lists the accepted workflow states in display order.
var EnquiryStatuses = []string{
	EnquiryStatusNew,
	EnquiryStatusInProgress,
	EnquiryStatusResolved,
	EnquiryStatusArchived,
}

// Enquiry 定义联系表单提交记录
type Enquiry struct {
	Model
	Name            string `gorm:"size:100;not null" json:"name"`
	Email           string `gorm:"size:255;index;not null" json:"email"`
	Phone           string `gorm:"size:30" json:"phone"`
	Company         string `gorm:"size:150" json:"company"`
	Subject         string `gorm:"size:200" json:"subject"`
	Message         string `gorm:"type:text;not null" json:"message"`
	ServiceInterest string `gorm:"size:150" json:"serviceInterest"`
	Source          string `gorm:"size:100" json:"source"`
	Status          string `gorm:"size:20;index;not null;default:new" json:"status"`
	Notes           string `gorm:"type:text" json:"notes"`
	IPAddress       string `gorm:"size:64" json:"ipAddress,omitempty"`
}
