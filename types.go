package folioengine

// SEOConfig is the site-wide SEO metadata block rendered into <head>.
type SEOConfig struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Keywords        string `json:"keywords"`
	FaviconURL      string `json:"faviconUrl"`
}

// SocialLink is one entry in the profile's ordered social link list.
// IconName is a key into the icon registry; unknown keys are not rendered.
type SocialLink struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	IconName string `json:"iconName"`
}

// Profile is the owner-identity record.
type Profile struct {
	Name              string       `json:"name"`
	Designation       string       `json:"designation"`
	Bio               string       `json:"bio"`
	AboutMe           string       `json:"aboutMe"`
	PhotoURL          string       `json:"photoUrl"`
	ResumeURL         string       `json:"resumeUrl"`
	Phone             string       `json:"phone"`
	Email             string       `json:"email"`
	YearsOfExperience string       `json:"yearsOfExperience"`
	Socials           []SocialLink `json:"socials"`
}

// Project categories form a closed enum.
const (
	CategoryWeb    = "Web"
	CategoryApp    = "App"
	CategoryDesign = "Design"
	CategoryOther  = "Other"
)

// Project is one portfolio project. Unpublished projects are visible only
// in the admin surface.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	TechStack   []string `json:"techStack"`
	LiveLink    string   `json:"liveLink,omitempty"`
	GithubLink  string   `json:"githubLink,omitempty"`
	Published   bool     `json:"published"`
}

// Skill is a named proficiency with a 0-100 percentage.
type Skill struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// Service is one offered service. Icon is a key into the icon registry.
type Service struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Enabled     bool   `json:"enabled"`
}

// Experience is one work-history entry.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Education is one education-history entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Period      string `json:"period"`
}

// Testimonial is one client testimonial.
type Testimonial struct {
	ID          string `json:"id"`
	ClientName  string `json:"clientName"`
	ClientPhoto string `json:"clientPhoto"`
	Feedback    string `json:"feedback"`
	Published   bool   `json:"published"`
}

// Message is one visitor contact message. The inbox is append-only from the
// visitor side; newest first. Date is RFC3339.
type Message struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Date    string `json:"date"`
	Read    bool   `json:"read"`
}

// ViewDay is one entry of the rolling 7-day view history.
type ViewDay struct {
	Name  string `json:"name"`
	Views int    `json:"views"`
}

// Analytics holds the best-effort view counters. ViewHistory always has
// exactly 7 ordered entries; only the last entry's count and the running
// total are ever incremented.
type Analytics struct {
	TotalViews  int       `json:"totalViews"`
	ViewHistory []ViewDay `json:"viewHistory"`
}

// AdminCredentials is the plaintext operator login pair. This is a
// deliberately low-security gate for a single-operator tool; when unset the
// hard-coded default pair applies. Do not mistake it for real auth.
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PortfolioData is the single root document holding all editable site
// content. It is the unit of synchronization: the Synchronizer persists and
// pushes it whole.
type PortfolioData struct {
	SiteName         string            `json:"siteName"`
	Logo             string            `json:"logo"`
	SEO              SEOConfig         `json:"seo"`
	Profile          Profile           `json:"profile"`
	Skills           []Skill           `json:"skills"`
	Projects         []Project         `json:"projects"`
	Services         []Service         `json:"services"`
	Experience       []Experience      `json:"experience"`
	Education        []Education       `json:"education"`
	Testimonials     []Testimonial     `json:"testimonials"`
	Messages         []Message         `json:"messages"`
	Analytics        Analytics         `json:"analytics"`
	AdminCredentials *AdminCredentials `json:"adminCredentials,omitempty"`
}

// AuthState is the operator authentication flag persisted under the
// portfolio_auth key. It is not part of PortfolioData.
type AuthState struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	User            string `json:"user,omitempty"`
}

// DocumentPatch is a partial PortfolioData for UpdateData. Non-nil fields
// replace the corresponding top-level document field wholesale (field-level
// replace, not deep-patch). Field contents are not validated beyond what the
// caller guarantees; this is a trusted-single-operator surface.
type DocumentPatch struct {
	SiteName         *string           `json:"siteName,omitempty"`
	Logo             *string           `json:"logo,omitempty"`
	SEO              *SEOConfig        `json:"seo,omitempty"`
	Profile          *Profile          `json:"profile,omitempty"`
	Skills           *[]Skill          `json:"skills,omitempty"`
	Projects         *[]Project        `json:"projects,omitempty"`
	Services         *[]Service        `json:"services,omitempty"`
	Experience       *[]Experience     `json:"experience,omitempty"`
	Education        *[]Education      `json:"education,omitempty"`
	Testimonials     *[]Testimonial    `json:"testimonials,omitempty"`
	Messages         *[]Message        `json:"messages,omitempty"`
	Analytics        *Analytics        `json:"analytics,omitempty"`
	AdminCredentials *AdminCredentials `json:"adminCredentials,omitempty"`
}

// cloneSlice copies a slice, preserving nil-ness.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// Clone returns a deep copy of the document. Every slice (including nested
// socials and tech stacks) is copied, so callers can hold the result as an
// immutable snapshot.
func (d PortfolioData) Clone() PortfolioData {
	out := d

	out.Profile.Socials = cloneSlice(d.Profile.Socials)
	out.Skills = cloneSlice(d.Skills)
	out.Services = cloneSlice(d.Services)
	out.Experience = cloneSlice(d.Experience)
	out.Education = cloneSlice(d.Education)
	out.Testimonials = cloneSlice(d.Testimonials)
	out.Messages = cloneSlice(d.Messages)
	out.Analytics.ViewHistory = cloneSlice(d.Analytics.ViewHistory)

	out.Projects = cloneSlice(d.Projects)
	for i := range out.Projects {
		out.Projects[i].TechStack = cloneSlice(out.Projects[i].TechStack)
	}

	if d.AdminCredentials != nil {
		creds := *d.AdminCredentials
		out.AdminCredentials = &creds
	}
	return out
}

// Credentials returns the operator login pair, falling back to the default
// pair when the document carries none.
func (d PortfolioData) Credentials() AdminCredentials {
	if d.AdminCredentials != nil {
		return *d.AdminCredentials
	}
	return AdminCredentials{Username: DefaultAdminUsername, Password: DefaultAdminPassword}
}

// Default operator credentials used when the document has none stored.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)
