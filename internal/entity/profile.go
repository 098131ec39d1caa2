package entity

// DbProfile represents a persisted employee profile. Each user owns exactly
// one profile; the unique index on user_id backs that invariant under
// concurrent creation.
type DbProfile struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	UserID       uint        `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	FirstName    string      `gorm:"column:first_name;type:varchar(35);not null" json:"first_name"`
	LastName     string      `gorm:"column:last_name;type:varchar(35);not null" json:"last_name"`
	MiddleName   string      `gorm:"column:middle_name;type:varchar(35)" json:"middle_name,omitempty"`
	Department   string      `gorm:"column:department;type:varchar(50);not null" json:"department"`
	Phone        string      `gorm:"column:phone;type:varchar(20);not null" json:"phone"`
	Email        string      `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Availability string      `gorm:"column:availability;type:varchar(255)" json:"availability,omitempty"`
	WorkingHours string      `gorm:"column:working_hours;type:varchar(20)" json:"working_hours,omitempty"`
	Photo        string      `gorm:"column:photo;type:varchar(255)" json:"photo,omitempty"`
	PhotoThumb   string      `gorm:"column:photo_thumb;type:varchar(255)" json:"photo_thumb,omitempty"`
	Projects     StringArray `gorm:"column:projects;type:text" json:"projects,omitempty"`
	VKLink       string      `gorm:"column:vk_link;type:varchar(255)" json:"vk_link,omitempty"`
	TelegramLink string      `gorm:"column:telegram_link;type:varchar(255)" json:"telegram_link,omitempty"`
	SkypeLink    string      `gorm:"column:skype_link;type:varchar(255)" json:"skype_link,omitempty"`
	WhatsappLink string      `gorm:"column:whatsapp_link;type:varchar(255)" json:"whatsapp_link,omitempty"`
}

// TableName 指定表名。
func (DbProfile) TableName() string {
	return "employee_profiles"
}

// ProfileUpdateRequest is a partial profile payload: only non-nil fields are
// applied to the record.
type ProfileUpdateRequest struct {
	FirstName    *string   `json:"first_name,omitempty"`
	LastName     *string   `json:"last_name,omitempty"`
	MiddleName   *string   `json:"middle_name,omitempty"`
	Department   *string   `json:"department,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Availability *string   `json:"availability,omitempty"`
	WorkingHours *string   `json:"working_hours,omitempty"`
	Projects     *[]string `json:"projects,omitempty"`
	VKLink       *string   `json:"vk_link,omitempty"`
	TelegramLink *string   `json:"telegram_link,omitempty"`
	SkypeLink    *string   `json:"skype_link,omitempty"`
	WhatsappLink *string   `json:"whatsapp_link,omitempty"`
}

// ProfileSearchItem is the trimmed search result shape; it is also what the
// search cache stores.
type ProfileSearchItem struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name,omitempty"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// PhotoUploadResponse is returned after a successful photo ingestion.
type PhotoUploadResponse struct {
	Message      string `json:"message"`
	FileURL      string `json:"file_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}
