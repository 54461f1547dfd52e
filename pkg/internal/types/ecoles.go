package types

// EcoleCreateRequest 创建学校请求.
// 邮编为突尼斯 4 位数字，电话为 +216 国际格式，名称去除首尾空白后至少 3 字符.
type EcoleCreateRequest struct {
	Name       string `binding:"required,trimmed_min_3"  json:"name"`
	Address    string `binding:"required,max=255"        json:"address"`
	City       string `binding:"required,max=100"        json:"city"`
	PostalCode string `binding:"required,tn_postal_code" json:"postal_code"`
	Phone      string `binding:"required,tn_phone"       json:"phone"`
}

// EcoleUpdateRequest 更新学校请求，字段均可选，缺省字段保留原值.
type EcoleUpdateRequest struct {
	Name       *string `binding:"omitempty,trimmed_min_3"  json:"name"`
	Address    *string `binding:"omitempty,max=255"        json:"address"`
	City       *string `binding:"omitempty,max=100"        json:"city"`
	PostalCode *string `binding:"omitempty,tn_postal_code" json:"postal_code"`
	Phone      *string `binding:"omitempty,tn_phone"       json:"phone"`
}

// EcoleResponse 学校响应，StudentsCount 为只读统计字段.
type EcoleResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Phone         string `json:"phone"`
	StudentsCount int    `json:"students_count"`
}
