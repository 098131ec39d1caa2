package api

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"staffdir/internal/entity"
)

// 档案字段校验规则
var (
	nameRe         = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё\-]+$`)
	phoneRe        = regexp.MustCompile(`^\+?[1-9][0-9]{7,14}$`)
	workingHoursRe = regexp.MustCompile(`^\d{2}:\d{2}-\d{2}:\d{2}$`)
	vkRe           = regexp.MustCompile(`^https://(www\.)?vk\.com/[A-Za-z0-9_.\-]{3,30}$`)
	telegramRe     = regexp.MustCompile(`^https://(www\.)?(t\.me|telegram\.me)/[A-Za-z0-9_\-]{5,32}$`)
	skypeRe        = regexp.MustCompile(`^skype:[A-Za-z0-9_.\-]{3,32}(\?call)?$`)
	whatsappRe     = regexp.MustCompile(`^https://wa\.me/\d{10,15}$`)
)

func validatePersonName(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if len([]rune(trimmed)) < 2 || len([]rune(trimmed)) > 35 {
		return fmt.Errorf("%s must be 2 to 35 characters", field)
	}
	if !nameRe.MatchString(trimmed) {
		return fmt.Errorf("%s may only contain letters and hyphens", field)
	}
	return nil
}

func validateMiddleName(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if len([]rune(trimmed)) > 35 {
		return fmt.Errorf("middle_name must not exceed 35 characters")
	}
	if !nameRe.MatchString(trimmed) {
		return fmt.Errorf("middle_name may only contain letters and hyphens")
	}
	return nil
}

func validatePhone(value string) error {
	if !phoneRe.MatchString(strings.TrimSpace(value)) {
		return fmt.Errorf("invalid phone format")
	}
	return nil
}

func validateDepartment(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("department is required")
	}
	if len([]rune(trimmed)) > 50 {
		return fmt.Errorf("department must not exceed 50 characters")
	}
	return nil
}

func validateEmail(value string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

func validateWorkingHours(value string) error {
	if value != "" && !workingHoursRe.MatchString(value) {
		return fmt.Errorf("working_hours must be in hh:mm-hh:mm format")
	}
	return nil
}

func validateSocialLink(field, value string, re *regexp.Regexp) error {
	if value != "" && !re.MatchString(value) {
		return fmt.Errorf("invalid %s link format", field)
	}
	return nil
}

// validateProfileUpdate 逐字段校验部分更新载荷，只校验出现的字段。
// 返回第一个校验失败。
func validateProfileUpdate(req *entity.ProfileUpdateRequest) error {
	if req.FirstName != nil {
		if err := validatePersonName("first_name", *req.FirstName); err != nil {
			return err
		}
	}
	if req.LastName != nil {
		if err := validatePersonName("last_name", *req.LastName); err != nil {
			return err
		}
	}
	if req.MiddleName != nil {
		if err := validateMiddleName(*req.MiddleName); err != nil {
			return err
		}
	}
	if req.Phone != nil {
		if err := validatePhone(*req.Phone); err != nil {
			return err
		}
	}
	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return err
		}
	}
	if req.Department != nil {
		if err := validateDepartment(*req.Department); err != nil {
			return err
		}
	}
	if req.WorkingHours != nil {
		if err := validateWorkingHours(*req.WorkingHours); err != nil {
			return err
		}
	}
	if req.VKLink != nil {
		if err := validateSocialLink("vk", *req.VKLink, vkRe); err != nil {
			return err
		}
	}
	if req.TelegramLink != nil {
		if err := validateSocialLink("telegram", *req.TelegramLink, telegramRe); err != nil {
			return err
		}
	}
	if req.SkypeLink != nil {
		if err := validateSocialLink("skype", *req.SkypeLink, skypeRe); err != nil {
			return err
		}
	}
	if req.WhatsappLink != nil {
		if err := validateSocialLink("whatsapp", *req.WhatsappLink, whatsappRe); err != nil {
			return err
		}
	}
	return nil
}
