package model

/*
 * Copyright © 2018-2019 Around25 SRL <office@around25.com>
 *
 * Licensed under the Around25 Wallet License Agreement (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.around25.com/licenses/EXCHANGE_LICENSE
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 * @author		Cosmin Harangus <cosmin@around25.com>
 * @copyright 2018-2019 Around25 SRL <office@around25.com>
 * @license 	EXCHANGE_LICENSE
 */

import (
	"time"
)

const (
	OptionMaintenanceEnabled         = "maintenance_mode_enabled"
	OptionMaintenanceCustomHTML      = "maintenance_mode_custom_html"
	OptionMaintenanceStartTime       = "maintenance_mode_start_time"
	OptionMaintenanceEndTime         = "maintenance_mode_end_time"
	OptionMaintenanceAllowedRoles    = "maintenance_mode_allowed_roles"
	OptionMaintenanceCompletedNotice = "maintenance_mode_completed_notice"

	OptionSiteName      = "blogname"
	OptionSiteTimezone  = "timezone_string"
	OptionSiteGMTOffset = "gmt_offset"
)

// MaintenanceOptions lists every key owned by the maintenance gate
var MaintenanceOptions = []string{
	OptionMaintenanceEnabled,
	OptionMaintenanceCustomHTML,
	OptionMaintenanceStartTime,
	OptionMaintenanceEndTime,
	OptionMaintenanceAllowedRoles,
	OptionMaintenanceCompletedNotice,
}

// Option structure
type Option struct {
	ID        uint64    `sql:"type:bigint" gorm:"PRIMARY_KEY" json:"-"`
	Name      string    `gorm:"type:varchar(191);uniqueIndex" json:"name"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func NewOption(name string, value string) *Option {
	return &Option{
		Name:  name,
		Value: value,
	}
}
