package entity

// UserUpdates 用户更新字段
type UserUpdates struct {
	Login             *string
	PasswordHash      *string
	Role              *string
	IsActive          *bool
	IsInitialPassword *bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Login != nil {
		updates["login"] = *u.Login
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	if u.IsInitialPassword != nil {
		updates["is_initial_password"] = *u.IsInitialPassword
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ProfileUpdates 档案更新字段，仅出现的字段会被写入
type ProfileUpdates struct {
	FirstName    *string
	LastName     *string
	MiddleName   *string
	Department   *string
	Phone        *string
	Email        *string
	Availability *string
	WorkingHours *string
	Photo        *string
	PhotoThumb   *string
	Projects     *StringArray
	VKLink       *string
	TelegramLink *string
	SkypeLink    *string
	WhatsappLink *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u ProfileUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.FirstName != nil {
		updates["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		updates["last_name"] = *u.LastName
	}
	if u.MiddleName != nil {
		updates["middle_name"] = *u.MiddleName
	}
	if u.Department != nil {
		updates["department"] = *u.Department
	}
	if u.Phone != nil {
		updates["phone"] = *u.Phone
	}
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.Availability != nil {
		updates["availability"] = *u.Availability
	}
	if u.WorkingHours != nil {
		updates["working_hours"] = *u.WorkingHours
	}
	if u.Photo != nil {
		updates["photo"] = *u.Photo
	}
	if u.PhotoThumb != nil {
		updates["photo_thumb"] = *u.PhotoThumb
	}
	if u.Projects != nil {
		updates["projects"] = *u.Projects
	}
	if u.VKLink != nil {
		updates["vk_link"] = *u.VKLink
	}
	if u.TelegramLink != nil {
		updates["telegram_link"] = *u.TelegramLink
	}
	if u.SkypeLink != nil {
		updates["skype_link"] = *u.SkypeLink
	}
	if u.WhatsappLink != nil {
		updates["whatsapp_link"] = *u.WhatsappLink
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u ProfileUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
