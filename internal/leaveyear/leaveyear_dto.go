package leaveyear

type CreateConfigurationRequest struct {
	CutoffStartDate string `json:"cutoff_start_date" binding:"required"`
	CutoffEndDate   string `json:"cutoff_end_date" binding:"required"`
	Year            string `json:"year" binding:"required,max=20"`
}

type UpdateConfigurationRequest struct {
	CutoffStartDate string `json:"cutoff_start_date" binding:"required"`
	CutoffEndDate   string `json:"cutoff_end_date" binding:"required"`
	IsActive        *bool  `json:"is_active" binding:"required"`
}

type ConfigurationResponse struct {
	ID              string `json:"id"`
	CutoffStartDate string `json:"cutoff_start_date"`
	CutoffEndDate   string `json:"cutoff_end_date"`
	Year            string `json:"year"`
	IsActive        bool   `json:"is_active"`
}
