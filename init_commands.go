package main

// Callback data prefixes. The index forms are used when a course name
// does not fit in Telegram's 64-byte callback data.
const (
	tokenRegister      = "register_"
	tokenRegisterIndex = "registeri_"
	tokenPrice         = "price_"
	tokenPriceIndex    = "pricei_"
)

func SetupCommandRegistry() *CommandRegistry {
	r := NewCommandRegistry()

	courses := &CoursesCmd{}
	available := &AvailableCoursesCmd{}
	register := &RegistrationCmd{}
	help := &HelpCmd{}

	// Info
	r.Register("start", &StartCmd{})
	r.Register("help", help)

	// Catalog
	r.Register("courses", courses)
	r.Register("findcourse", &FindCourseCmd{})
	r.Register("available_courses", available)
	r.Register("courseprice", &CoursePriceCmd{})

	// Registration
	r.Register("registration", register)

	// Reply keyboard, menu-driven mode only
	r.RegisterLabel("label_courses", courses)
	r.RegisterLabel("label_available", available)
	r.RegisterLabel("label_register", register)
	r.RegisterLabel("label_price", &PriceMenuCmd{})
	r.RegisterLabel("label_help", help)

	// Inline buttons
	r.RegisterCallback(tokenRegister, handleRegisterByName)
	r.RegisterCallback(tokenRegisterIndex, handleRegisterByIndex)
	r.RegisterCallback(tokenPrice, handlePriceByName)
	r.RegisterCallback(tokenPriceIndex, handlePriceByIndex)

	return r
}
