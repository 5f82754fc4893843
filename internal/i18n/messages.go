// Package i18n holds the bilingual user-facing message strings. The site
// serves English and Georgian; every message a browser might display exists
// in both, selected by the request's language field.
package i18n

// Lang identifies a supported interface language
type Lang string

const (
	LangEnglish  Lang = "en"
	LangGeorgian Lang = "ge"
)

// Normalize maps an arbitrary language value to a supported Lang,
// defaulting to English.
func Normalize(language string) Lang {
	if language == string(LangGeorgian) {
		return LangGeorgian
	}
	return LangEnglish
}

// Message keys. Values are the English strings so logs stay readable.
const (
	MsgCredentialsRequired  = "Email and password are required"
	MsgUserNotFound         = "User not found"
	MsgVerifyFirst          = "Please verify your email first"
	MsgInvalidPassword      = "Invalid password"
	MsgLoginSuccess         = "Login successful!"
	MsgEmailTaken           = "A user with this email already exists"
	MsgUsernameTaken        = "A user with this username already exists"
	MsgDatabaseError        = "Database error. Please try again."
	MsgEmailSendFailed      = "Failed to send verification email. Please try again."
	MsgRegisterSuccess      = "Registration successful! Please check your email to verify your account."
	MsgEmailRequired        = "Email is required"
	MsgResetInstructions    = "If this email is registered in our system, you will receive password reset instructions shortly"
	MsgTokenPasswordNeeded  = "Token and password are required"
	MsgResetLinkInvalid     = "Invalid or expired reset link"
	MsgPasswordResetOK      = "Password successfully reset"
	MsgPasswordResetFailed  = "Failed to reset password"
	MsgRatingContentNeeded  = "Rating and content are required"
	MsgRatingRange          = "Rating must be between 1 and 5"
	MsgReviewTitleLength    = "Title must be 3-100 characters"
	MsgReviewContentLength  = "Content must be 10-1000 characters"
	MsgReviewSubmitted      = "Review submitted successfully! It will appear after moderation."
	MsgGoogleSignInFailed   = "Google sign-in failed. Please try again."
)

var georgian = map[string]string{
	MsgCredentialsRequired: "ელ.ფოსტა და პაროლი აუცილებელია",
	MsgUserNotFound:        "მომხმარებელი ვერ მოიძებნა",
	MsgVerifyFirst:         "გთხოვთ დაადასტუროთ თქვენი ელ.ფოსტა პირველ რიგში",
	MsgInvalidPassword:     "არასწორი პაროლი",
	MsgLoginSuccess:        "წარმატებით შეხვედით!",
	MsgEmailTaken:          "ამ ელ.ფოსტით მომხმარებელი უკვე რეგისტრირებულია",
	MsgUsernameTaken:       "ამ სახელით მომხმარებელი უკვე რეგისტრირებულია",
	MsgDatabaseError:       "მონაცემთა ბაზის შეცდომა. გთხოვთ სცადოთ ხელახლა.",
	MsgEmailSendFailed:     "ელ.ფოსტის გაგზავნა ვერ მოხერხდა. გთხოვთ სცადოთ ხელახლა.",
	MsgRegisterSuccess:     "რეგისტრაცია წარმატებულია! გთხოვთ შეამოწმოთ თქვენი ელ.ფოსტა ანგარიშის დასადასტურებლად.",
	MsgEmailRequired:       "ელ.ფოსტა აუცილებელია",
	MsgResetInstructions:   "თუ ეს ელ.ფოსტა რეგისტრირებულია ჩვენს სისტემაში, მალე მიიღებთ პაროლის აღდგენის ინსტრუქციას",
	MsgTokenPasswordNeeded: "ტოკენი და პაროლი აუცილებელია",
	MsgResetLinkInvalid:    "არასწორი ან ვადაგასული ლინკი",
	MsgPasswordResetOK:     "პაროლი წარმატებით შეიცვალა",
	MsgPasswordResetFailed: "პაროლის შეცვლა ვერ მოხერხდა",
	MsgRatingContentNeeded: "რეიტინგი და შინაარსი აუცილებელია",
	MsgRatingRange:         "რეიტინგი უნდა იყოს 1-დან 5-მდე",
	MsgReviewTitleLength:   "სათაური უნდა იყოს 3-100 სიმბოლო",
	MsgReviewContentLength: "შინაარსი უნდა იყოს 10-1000 სიმბოლო",
	MsgReviewSubmitted:     "რეცენზია წარმატებით გაგზავნა! იგი გამოჩნდება მოდერაციის შემდეგ.",
	MsgGoogleSignInFailed:  "Google-ით შესვლა ვერ მოხერხდა. გთხოვთ სცადოთ ხელახლა.",
}

// T translates a message key to the requested language. Untranslated
// messages fall back to English.
func T(lang Lang, msg string) string {
	if lang == LangGeorgian {
		if ge, ok := georgian[msg]; ok {
			return ge
		}
	}
	return msg
}
