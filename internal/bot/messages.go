package bot

// User-facing Hebrew text. Keep all copy here so flows stay readable.

// Main menu reply-keyboard labels. Inbound messages are matched against these
// exact strings.
const (
	menuCreate  = "📝 פרסום שירות"
	menuSearch  = "🔍 חיפוש"
	menuBrowse  = "📂 עיון בקטגוריות"
	menuMyPosts = "📋 הפוסטים שלי"
	menuSaved   = "⭐ פוסטים שמורים"
	menuAlerts  = "🔔 התראות"
	menuHelp    = "❓ עזרה"
)

const (
	msgWelcome = `ברוכים הבאים ללוח השירותים! 🎉

כאן אפשר לפרסם שירותים, לחפש נותני שירות, ולסגור עסקאות בברטר או בתשלום.

בחרו פעולה מהתפריט למטה:`

	msgHelp = `איך זה עובד?

📝 *פרסום שירות* — עונים על כמה שאלות קצרות והשירות שלכם באוויר.
🔍 *חיפוש* — לפי מילות מפתח או לפי כותרת.
📂 *עיון בקטגוריות* — ברטר, תשלום, חינם או הכל.
📋 *הפוסטים שלי* — עריכה, הקפאה, מחיקה וסטטיסטיקות.
⭐ *פוסטים שמורים* — הפוסטים שסימנתם בכוכב.
🔔 *התראות* — קבלו הודעה כשמתפרסם פוסט עם מילת מפתח שבחרתם.

בכל שלב אפשר לבטל עם הכפתור או עם /cancel.`

	msgHelpAdmin = `

*פקודות מנהל:*
/testpost — יצירת פוסט בדיקה פרטי`

	msgError = "משהו השתבש 😕 נסו שוב מההתחלה."

	msgCancelled = "הפעולה בוטלה. חוזרים לתפריט הראשי:"

	msgUnknown = "לא הבנתי 🤔 בחרו פעולה מהתפריט:"
)

// Creation flow prompts.
const (
	msgAskTitle       = "מה השירות שאתם מציעים? כתבו כותרת קצרה:"
	msgAskDescription = "מעולה! עכשיו ספרו קצת יותר — מה בדיוק אתם מציעים?"
	msgAskPricing     = "איך תרצו לקבל תמורה?"
	msgAskPriceRange  = "מה טווח המחירים? (למשל: 100-500, או דלג)"
	msgAskPortfolio   = "יש תיק עבודות? שלחו קישורים, או דלג:"
	msgAskContact     = "איך יוצרים איתכם קשר? (טלפון / אימייל / יוזר בטלגרם)"
	msgAskTags        = "לסיום, הוסיפו תגיות מופרדות בפסיקים (למשל: עיצוב, לוגו), או דלג:"
	msgAskVisibility  = "פוסט ציבורי או פרטי (בדיקה)?"
	msgPostCreated    = "הפוסט פורסם! 🎉"
	msgTestPostStart  = "יוצרים פוסט בדיקה (פרטי). מה הכותרת?"
	msgFreePreset     = "חינם"
)

// Search flow.
const (
	msgSearchType       = "איך לחפש?"
	msgAskSearchFull    = "מה לחפש? כתבו מילות מפתח:"
	msgAskSearchTitles  = "כתבו מילה מהכותרת:"
	msgNoSearchResults  = "לא נמצאו תוצאות 😕 נסו מילים אחרות."
	msgSearchResultsFmt = "נמצאו %d תוצאות:"
	msgTitleResultsFmt  = "נמצאו %d כותרות מתאימות:"
)

// Browse flow.
const (
	msgBrowseCategories = "באיזו קטגוריה לעיין?"
	msgBrowseEmpty      = "אין עדיין פוסטים בקטגוריה הזו."
	msgBrowseHeaderFmt  = "%s · עמוד %d מתוך %d (%d פוסטים)"
)

// Post actions and moderation.
const (
	msgContactFmt        = "📞 יצירת קשר עם %s:\n%s"
	msgCopyContactPhone  = "מספר הטלפון (לחיצה ארוכה להעתקה):"
	msgCopyContactEmail  = "האימייל (לחיצה ארוכה להעתקה):"
	msgCopyContactHandle = "היוזר בטלגרם (לחיצה ארוכה להעתקה):"
	msgCopyContactOther  = "פרטי הקשר (לחיצה ארוכה להעתקה):"
	msgSaved             = "נשמר! ⭐"
	msgUnsaved           = "הוסר מהשמורים"
	msgAskReportReason   = "מה הבעיה בפוסט? כתבו את הסיבה ונעביר למנהלים:"
	msgReportSent        = "תודה! הדיווח הועבר למנהלים 🙏"
	msgReportCancelled   = "הדיווח בוטל."
	msgReportForwardFmt  = "🚨 דיווח חדש (%s)\n\nפוסט: #%d — %s\nמדווח: %d\nסיבה: %s"
	msgShareFmt          = "שתפו את הפוסט עם הקישור:\n%s"
	msgPostNotFound      = "הפוסט כבר לא קיים 😕"
	msgPostFrozenToast   = "הפוסט הוקפא ❄️"
	msgPostUnfrozenToast = "הפוסט הופעל מחדש 🟢"
	msgConfirmDelete     = "למחוק את הפוסט לצמיתות? אי אפשר לבטל."
	msgDeleted           = "הפוסט נמחק."
	msgDeleteCancelled   = "המחיקה בוטלה."
	msgNotYourPost       = "הפוסט הזה לא שלכם."
)

// My posts and stats.
const (
	msgMyPostsEmpty     = "עוד לא פרסמתם פוסטים. לחצו על 📝 כדי להתחיל!"
	msgMyPostsHeaderFmt = "הפוסטים שלכם (%d פעילים, %d מוקפאים):"
	msgSavedEmpty       = "אין פוסטים שמורים. סמנו ⭐ על פוסט כדי לשמור אותו."
	msgSavedHeaderFmt   = "הפוסטים השמורים שלכם (%d):"
	msgStatsFmt         = `📊 סטטיסטיקות — %s

👁 צפיות: %d
📞 יצירות קשר: %d
⭐ שמירות: %d
🔗 שיתופים: %d
🚨 דיווחים: %d

👥 משתמשים ייחודיים: %d
📈 מעורבות: %.0f%%
⏱ פורסם %s`
)

// Edit flow.
const (
	msgEditMenu        = "מה לערוך?"
	msgEditPromptFmt   = "הערך הנוכחי:\n%s\n\nשלחו ערך חדש:"
	msgEditPricingMenu = "בחרו אפשרות תמחור חדשה:"
	msgEditSaved       = "עודכן! ✅"
)

// Keyword alerts.
const (
	msgAlertMenu        = "🔔 התראות על מילות מפתח\n\nנעדכן אתכם כשמתפרסם פוסט חדש שמכיל מילה שבחרתם."
	msgAskAlertKeyword  = "איזו מילה להוסיף?"
	msgAskAlertReplace  = "כתבו את כל מילות המפתח החדשות, מופרדות בפסיקים:"
	msgAlertAdded       = "נוסף! נעדכן אתכם על פוסטים חדשים עם \"%s\" 🔔"
	msgAlertExists      = "המילה \"%s\" כבר ברשימה שלכם."
	msgAlertKeywordsFmt = "מילות המפתח שלכם:\n%s"
	msgAlertNoKeywords  = "אין לכם עדיין מילות מפתח. הוסיפו אחת!"
	msgAlertRemoved     = "הוסר 🗑"
	msgAlertReplaced    = "הרשימה עודכנה! ✅"
	msgAlertRemovePick  = "איזו מילה להסיר?"
	msgAlertNotifyFmt   = "🔔 פוסט חדש שמתאים למילה \"%s\":"
)

const msgShutdown = "הבוט יורד לתחזוקה, נחזור בקרוב 🛠"

// Button labels.
const (
	btnBarter       = "🔄 ברטר"
	btnPayment      = "💰 תשלום"
	btnBoth         = "🔄💰 שניהם"
	btnFree         = "🎁 חינם"
	btnPublic       = "🌍 ציבורי"
	btnPrivate      = "🔒 פרטי"
	btnContact      = "📞 יצירת קשר"
	btnCopyContact  = "📋 העתקת פרטים"
	btnSave         = "⭐ שמירה"
	btnUnsave       = "⭐ הסרה מהשמורים"
	btnShare        = "🔗 שיתוף"
	btnReport       = "🚨 דיווח"
	btnEdit         = "✏️ עריכה"
	btnToggleFreeze = "❄️ הקפאה"
	btnToggleActive = "🟢 הפעלה"
	btnDelete       = "🗑 מחיקה"
	btnStats        = "📊 סטטיסטיקות"
	btnBack         = "⬅️ חזרה"
	btnCancel       = "❌ ביטול"
	btnSearchFull   = "🔍 חיפוש חופשי"
	btnSearchTitles = "🔤 חיפוש בכותרות"
	btnCatAll       = "📂 הכל"
	btnCatBarter    = "🔄 ברטר"
	btnCatPayment   = "💰 תשלום"
	btnCatFree      = "🎁 חינם"
	btnAlertAdd     = "➕ הוספת מילה"
	btnAlertShow    = "📄 הצגת המילים"
	btnAlertRemove  = "➖ הסרת מילה"
	btnAlertReplace = "♻️ החלפת הרשימה"
	btnEditTitle    = "כותרת"
	btnEditDesc     = "תיאור"
	btnEditPricing  = "תמחור"
	btnEditTags     = "תגיות"
	btnEditLinks    = "קישורים"
	btnEditContact  = "פרטי קשר"
	btnConfirmDel   = "🗑 כן, למחוק"
	btnCancelDel    = "❌ לא, להשאיר"
)
