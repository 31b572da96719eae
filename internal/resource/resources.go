package resource

// Participants is the participant roster
var Participants = Resource{
	Name:     "participants",
	Singular: "Participant",
	Title:    "Participants",
	Table:    "participants",
	Fields: []Field{
		{Column: "first_name", Label: "First Name", Kind: Text},
		{Column: "last_name", Label: "Last Name", Kind: Text},
		{Column: "email", Label: "Email", Kind: Text},
		{Column: "phone", Label: "Phone", Kind: Text},
		{Column: "dob", Label: "Date of Birth", Kind: Date},
		{Column: "school", Label: "School", Kind: Text},
		{Column: "grade_level", Label: "Grade", Kind: Text},
		{Column: "notes", Label: "Notes", Kind: LongText},
	},
	SearchColumns: []string{"first_name", "last_name", "email", "school"},
	OrderBy:       "last_name, first_name",
}

// Donations records gifts, optionally tied to a participant
var Donations = Resource{
	Name:     "donations",
	Singular: "Donation",
	Title:    "Donations",
	Table:    "donations",
	Fields: []Field{
		{Column: "donor_name", Label: "Donor", Kind: Text},
		{Column: "email", Label: "Email", Kind: Text},
		{Column: "amount", Label: "Amount", Kind: Decimal},
		{Column: "donated_on", Label: "Date", Kind: Date},
		{Column: "message", Label: "Message", Kind: LongText},
		{Column: "participant_id", Label: "Participant ID", Kind: Integer},
	},
	SearchColumns: []string{"donor_name", "email", "message"},
	OrderBy:       "donated_on DESC",
}

// Surveys holds free-form survey responses
var Surveys = Resource{
	Name:     "surveys",
	Singular: "Survey",
	Title:    "Surveys",
	Table:    "surveys",
	Fields: []Field{
		{Column: "participant_id", Label: "Participant ID", Kind: Integer},
		{Column: "topic", Label: "Topic", Kind: Text},
		{Column: "question", Label: "Question", Kind: Text},
		{Column: "score", Label: "Score", Kind: Integer},
		{Column: "comments", Label: "Comments", Kind: LongText},
		{Column: "submitted_on", Label: "Submitted", Kind: Date},
	},
	SearchColumns: []string{"topic", "question", "comments"},
	OrderBy:       "id DESC",
}

// Milestones tracks participant achievements
var Milestones = Resource{
	Name:     "milestones",
	Singular: "Milestone",
	Title:    "Milestones",
	Table:    "milestones",
	Fields: []Field{
		{Column: "participant_id", Label: "Participant ID", Kind: Integer},
		{Column: "name", Label: "Name", Kind: Text},
		{Column: "description", Label: "Description", Kind: LongText},
		{Column: "achieved_on", Label: "Achieved", Kind: Date},
	},
	SearchColumns: []string{"name", "description"},
	OrderBy:       "achieved_on DESC",
}

// Organizations are partner and donor organizations
var Organizations = Resource{
	Name:     "organizations",
	Singular: "Organization",
	Title:    "Organizations",
	Table:    "organizations",
	Fields: []Field{
		{Column: "name", Label: "Name", Kind: Text},
		{Column: "org_type", Label: "Type", Kind: Text},
		{Column: "email", Label: "Email", Kind: Text},
		{Column: "phone", Label: "Phone", Kind: Text},
		{Column: "address", Label: "Address", Kind: Text},
		{Column: "notes", Label: "Notes", Kind: LongText},
	},
	SearchColumns: []string{"name", "org_type", "email"},
	OrderBy:       "name",
}

// Contacts belong to an organization
var Contacts = Resource{
	Name:     "contacts",
	Singular: "Contact",
	Title:    "Contacts",
	Table:    "contacts",
	Fields: []Field{
		{Column: "organization_id", Label: "Organization ID", Kind: Integer},
		{Column: "first_name", Label: "First Name", Kind: Text},
		{Column: "last_name", Label: "Last Name", Kind: Text},
		{Column: "title", Label: "Title", Kind: Text},
		{Column: "email", Label: "Email", Kind: Text},
		{Column: "phone", Label: "Phone", Kind: Text},
	},
	SearchColumns: []string{"first_name", "last_name", "email", "title"},
	OrderBy:       "last_name, first_name",
}

// Grants belong to an organization
var Grants = Resource{
	Name:     "grants",
	Singular: "Grant",
	Title:    "Grants",
	Table:    "grants",
	Fields: []Field{
		{Column: "organization_id", Label: "Organization ID", Kind: Integer},
		{Column: "name", Label: "Name", Kind: Text},
		{Column: "amount", Label: "Amount", Kind: Decimal},
		{Column: "status", Label: "Status", Kind: Text},
		{Column: "deadline", Label: "Deadline", Kind: Date},
		{Column: "notes", Label: "Notes", Kind: LongText},
	},
	SearchColumns: []string{"name", "status", "notes"},
	OrderBy:       "deadline",
}

// Enrollments is the public intake submission log. The public /enroll form
// inserts through the same descriptor the Manager views consume.
var Enrollments = Resource{
	Name:     "enrollments",
	Singular: "Enrollment",
	Title:    "Enrollments",
	Table:    "enrollments",
	Fields: []Field{
		{Column: "parent_guardian_name", Label: "Parent/Guardian", Kind: Text},
		{Column: "phone", Label: "Phone", Kind: Text},
		{Column: "email", Label: "Email", Kind: Text},
		{Column: "participant_name", Label: "Participant", Kind: Text},
		{Column: "participant_dob", Label: "Date of Birth", Kind: Date},
		{Column: "grade", Label: "Grade", Kind: Text},
		{Column: "school", Label: "School", Kind: Text},
		{Column: "program_interest", Label: "Program Interest", Kind: LongText},
		{Column: "mariachi_instrument", Label: "Instrument", Kind: Text},
		{Column: "instrument_experience", Label: "Experience", Kind: LongText},
		{Column: "fee_status", Label: "Fee Status", Kind: Text},
		{Column: "tuition_agreement", Label: "Tuition Agreement", Kind: Bool},
		{Column: "language_preference", Label: "Language", Kind: Text},
		{Column: "medical_consent", Label: "Medical Consent", Kind: Bool},
		{Column: "photo_consent", Label: "Photo Consent", Kind: Bool},
		{Column: "liability_release", Label: "Liability Release", Kind: Bool},
		{Column: "parent_signature", Label: "Signature", Kind: Text},
	},
	SearchColumns: []string{"parent_guardian_name", "participant_name", "email", "school"},
	OrderBy:       "id DESC",
}

// All lists the resources served by the generic CRUD handler, in nav order
func All() []Resource {
	return []Resource{
		Participants,
		Donations,
		Surveys,
		Milestones,
		Organizations,
		Contacts,
		Grants,
		Enrollments,
	}
}
