package convert

// ResumeData is the structured resume accepted by the JSON conversion
// endpoint. Field names follow the frontend's camelCase contract.
type ResumeData struct {
	BasicInfo  BasicInfo        `json:"basicInfo" binding:"required"`
	Education  []EducationItem  `json:"education" binding:"required"`
	Experience []ExperienceItem `json:"experience" binding:"required"`
	Projects   []ProjectItem    `json:"projects" binding:"required"`
	Skills     Skills           `json:"skills" binding:"required"`
}

type BasicInfo struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required"`
	LinkedIn string `json:"linkedin" binding:"required"`
	GitHub   string `json:"github" binding:"required"`
	Website  string `json:"website,omitempty"`
}

type EducationItem struct {
	ID          string `json:"id" binding:"required"`
	Institution string `json:"institution" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Degree      string `json:"degree" binding:"required"`
	Minor       string `json:"minor,omitempty"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate,omitempty"`
	IsPresent   bool   `json:"isPresent"`
}

type ExperienceItem struct {
	ID           string   `json:"id" binding:"required"`
	Organization string   `json:"organization" binding:"required"`
	JobTitle     string   `json:"jobTitle" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	StartDate    string   `json:"startDate" binding:"required"`
	EndDate      string   `json:"endDate,omitempty"`
	IsPresent    bool     `json:"isPresent"`
	Description  []string `json:"description" binding:"required"`
}

type ProjectItem struct {
	ID           string   `json:"id" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Technologies string   `json:"technologies" binding:"required"`
	StartDate    string   `json:"startDate" binding:"required"`
	EndDate      string   `json:"endDate,omitempty"`
	IsPresent    bool     `json:"isPresent"`
	Description  []string `json:"description" binding:"required"`
}

type Skills struct {
	Languages      string `json:"languages" binding:"required"`
	Frameworks     string `json:"frameworks" binding:"required"`
	DeveloperTools string `json:"developerTools" binding:"required"`
	Libraries      string `json:"libraries" binding:"required"`
}

// TailorResponse is the body returned by the tailoring endpoint.
type TailorResponse struct {
	Filename              string `json:"filename"`
	OriginalContentLength int    `json:"original_content_length"`
	JobDescriptionLength  int    `json:"job_description_length"`
	TailoredResumeText    string `json:"tailored_resume_text"`
}

// FileToPDFResponse is the body returned by the file conversion endpoint.
type FileToPDFResponse struct {
	ResumeLink string `json:"resume_link"`
}

// JSONToPDFResponse is the body returned by the JSON conversion endpoint.
type JSONToPDFResponse struct {
	Message     string `json:"message"`
	ResumeLink  string `json:"resume_link"`
	PDFFilename string `json:"pdf_filename"`
}
