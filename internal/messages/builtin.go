package messages

import "health-assistant/internal/domain"

var builtin = map[domain.Language]Templates{
	domain.LangEnglish: {
		DOBPrompt:           "Please send your child's date of birth in DD-MM-YYYY format (for example 15-06-2023).",
		DateFormatError:     "Sorry, I could not read that date. Please send \"schedule\" again and reply with the date of birth as DD-MM-YYYY.",
		ScheduleHeaderFmt:   "Vaccination schedule for a child born on %s:",
		ScheduleLineFmt:     "• %s (%s): %s",
		ScheduleEmpty:       "The vaccination schedule is not available right now. Please try again later.",
		DistrictHelp:        "To update your district, send: set district <your district name>. Example: set district Howrah",
		DistrictSavedFmt:    "Your district has been set to %s. Send \"alert\" to check outbreak alerts.",
		DistrictFormatError: "Please provide a district name. Example: set district Howrah",
		DistrictRequired:    "Please set your district first. Send: set district <your district name>",
		NoAlertsFmt:         "There are no active outbreak alerts for %s.",
		FeedbackSaved:       "Thank you for your feedback!",
		FeedbackFormatError: "Please write your feedback after the word feedback. Example: feedback The answers were helpful",
		ImageError:          "Sorry, I could not process that image. Please send a clear photo (JPEG or PNG).",
		GenericError:        "Sorry, something went wrong. Please try again in a moment.",
		Unavailable:         "This service is temporarily unavailable. Please try again later.",
		NotInKnowledgeBase:  "I'm sorry, I don't have information about that in my knowledge base.",
	},
	domain.LangHindi: {
		DOBPrompt:           "कृपया अपने बच्चे की जन्म तिथि DD-MM-YYYY प्रारूप में भेजें (उदाहरण: 15-06-2023)।",
		DateFormatError:     "क्षमा करें, मैं यह तारीख नहीं समझ पाया। कृपया फिर से \"schedule\" भेजें और जन्म तिथि DD-MM-YYYY में लिखें।",
		ScheduleHeaderFmt:   "%s को जन्मे बच्चे का टीकाकरण कार्यक्रम:",
		ScheduleLineFmt:     "• %s (%s): %s",
		ScheduleEmpty:       "टीकाकरण कार्यक्रम अभी उपलब्ध नहीं है। कृपया बाद में प्रयास करें।",
		DistrictHelp:        "अपना ज़िला बदलने के लिए भेजें: set district <आपके ज़िले का नाम>। उदाहरण: set district Howrah",
		DistrictSavedFmt:    "आपका ज़िला %s सेट कर दिया गया है। प्रकोप अलर्ट देखने के लिए \"alert\" भेजें।",
		DistrictFormatError: "कृपया ज़िले का नाम लिखें। उदाहरण: set district Howrah",
		DistrictRequired:    "कृपया पहले अपना ज़िला सेट करें। भेजें: set district <आपके ज़िले का नाम>",
		NoAlertsFmt:         "%s के लिए कोई सक्रिय प्रकोप अलर्ट नहीं है।",
		FeedbackSaved:       "आपकी प्रतिक्रिया के लिए धन्यवाद!",
		FeedbackFormatError: "कृपया feedback शब्द के बाद अपनी प्रतिक्रिया लिखें। उदाहरण: feedback जवाब उपयोगी थे",
		ImageError:          "क्षमा करें, मैं इस तस्वीर को संसाधित नहीं कर सका। कृपया एक साफ़ फ़ोटो (JPEG या PNG) भेजें।",
		GenericError:        "क्षमा करें, कुछ गड़बड़ हो गई। कृपया थोड़ी देर बाद फिर से प्रयास करें।",
		Unavailable:         "यह सेवा अस्थायी रूप से उपलब्ध नहीं है। कृपया बाद में प्रयास करें।",
		NotInKnowledgeBase:  "क्षमा करें, मेरे ज्ञानकोष में इसके बारे में जानकारी नहीं है।",
	},
	domain.LangBengali: {
		DOBPrompt:           "অনুগ্রহ করে আপনার শিশুর জন্মতারিখ DD-MM-YYYY ফরম্যাটে পাঠান (যেমন 15-06-2023)।",
		DateFormatError:     "দুঃখিত, তারিখটি বুঝতে পারিনি। আবার \"schedule\" পাঠান এবং জন্মতারিখ DD-MM-YYYY ফরম্যাটে লিখুন।",
		ScheduleHeaderFmt:   "%s তারিখে জন্মানো শিশুর টিকাকরণ সূচি:",
		ScheduleLineFmt:     "• %s (%s): %s",
		ScheduleEmpty:       "টিকাকরণ সূচি এখন পাওয়া যাচ্ছে না। পরে আবার চেষ্টা করুন।",
		DistrictHelp:        "আপনার জেলা বদলাতে পাঠান: set district <আপনার জেলার নাম>। উদাহরণ: set district Howrah",
		DistrictSavedFmt:    "আপনার জেলা %s হিসেবে সেট করা হয়েছে। প্রাদুর্ভাব সতর্কতা দেখতে \"alert\" পাঠান।",
		DistrictFormatError: "অনুগ্রহ করে জেলার নাম লিখুন। উদাহরণ: set district Howrah",
		DistrictRequired:    "অনুগ্রহ করে আগে আপনার জেলা সেট করুন। পাঠান: set district <আপনার জেলার নাম>",
		NoAlertsFmt:         "%s জেলার জন্য কোনো সক্রিয় প্রাদুর্ভাব সতর্কতা নেই।",
		FeedbackSaved:       "আপনার মতামতের জন্য ধন্যবাদ!",
		FeedbackFormatError: "অনুগ্রহ করে feedback শব্দের পরে আপনার মতামত লিখুন। উদাহরণ: feedback উত্তরগুলো কাজে লেগেছে",
		ImageError:          "দুঃখিত, ছবিটি প্রক্রিয়া করা যায়নি। অনুগ্রহ করে একটি পরিষ্কার ছবি (JPEG বা PNG) পাঠান।",
		GenericError:        "দুঃখিত, কিছু একটা সমস্যা হয়েছে। একটু পরে আবার চেষ্টা করুন।",
		Unavailable:         "এই পরিষেবাটি সাময়িকভাবে বন্ধ আছে। পরে আবার চেষ্টা করুন।",
		NotInKnowledgeBase:  "দুঃখিত, আমার জ্ঞানভাণ্ডারে এই বিষয়ে তথ্য নেই।",
	},
	domain.LangOdia: {
		DOBPrompt:           "ଦୟାକରି ଆପଣଙ୍କ ଶିଶୁର ଜନ୍ମ ତାରିଖ DD-MM-YYYY ଫର୍ମାଟରେ ପଠାନ୍ତୁ (ଉଦାହରଣ: 15-06-2023)।",
		DateFormatError:     "ଦୁଃଖିତ, ମୁଁ ଏହି ତାରିଖ ବୁଝିପାରିଲି ନାହିଁ। ପୁଣି \"schedule\" ପଠାନ୍ତୁ ଏବଂ ଜନ୍ମ ତାରିଖ DD-MM-YYYY ରେ ଲେଖନ୍ତୁ।",
		ScheduleHeaderFmt:   "%s ରେ ଜନ୍ମ ହୋଇଥିବା ଶିଶୁର ଟୀକାକରଣ ସୂଚୀ:",
		ScheduleLineFmt:     "• %s (%s): %s",
		ScheduleEmpty:       "ଟୀକାକରଣ ସୂଚୀ ବର୍ତ୍ତମାନ ଉପଲବ୍ଧ ନାହିଁ। ଦୟାକରି ପରେ ଚେଷ୍ଟା କରନ୍ତୁ।",
		DistrictHelp:        "ଆପଣଙ୍କ ଜିଲ୍ଲା ବଦଳାଇବାକୁ ପଠାନ୍ତୁ: set district <ଆପଣଙ୍କ ଜିଲ୍ଲାର ନାମ>। ଉଦାହରଣ: set district Khordha",
		DistrictSavedFmt:    "ଆପଣଙ୍କ ଜିଲ୍ଲା %s ଭାବେ ସେଟ୍ ହୋଇଛି। ପ୍ରାଦୁର୍ଭାବ ସତର୍କତା ଦେଖିବାକୁ \"alert\" ପଠାନ୍ତୁ।",
		DistrictFormatError: "ଦୟାକରି ଜିଲ୍ଲାର ନାମ ଲେଖନ୍ତୁ। ଉଦାହରଣ: set district Khordha",
		DistrictRequired:    "ଦୟାକରି ପ୍ରଥମେ ଆପଣଙ୍କ ଜିଲ୍ଲା ସେଟ୍ କରନ୍ତୁ। ପଠାନ୍ତୁ: set district <ଆପଣଙ୍କ ଜିଲ୍ଲାର ନାମ>",
		NoAlertsFmt:         "%s ପାଇଁ କୌଣସି ସକ୍ରିୟ ପ୍ରାଦୁର୍ଭାବ ସତର୍କତା ନାହିଁ।",
		FeedbackSaved:       "ଆପଣଙ୍କ ମତାମତ ପାଇଁ ଧନ୍ୟବାଦ!",
		FeedbackFormatError: "ଦୟାକରି feedback ଶବ୍ଦ ପରେ ଆପଣଙ୍କ ମତାମତ ଲେଖନ୍ତୁ। ଉଦାହରଣ: feedback ଉତ୍ତରଗୁଡ଼ିକ ଉପଯୋଗୀ ଥିଲା",
		ImageError:          "ଦୁଃଖିତ, ଏହି ଛବିକୁ ପ୍ରକ୍ରିୟା କରିପାରିଲି ନାହିଁ। ଦୟାକରି ଏକ ସ୍ପଷ୍ଟ ଫଟୋ (JPEG କିମ୍ବା PNG) ପଠାନ୍ତୁ।",
		GenericError:        "ଦୁଃଖିତ, କିଛି ଭୁଲ ହୋଇଗଲା। ଦୟାକରି କିଛି ସମୟ ପରେ ପୁଣି ଚେଷ୍ଟା କରନ୍ତୁ।",
		Unavailable:         "ଏହି ସେବା ଅସ୍ଥାୟୀ ଭାବେ ଉପଲବ୍ଧ ନାହିଁ। ଦୟାକରି ପରେ ଚେଷ୍ଟା କରନ୍ତୁ।",
		NotInKnowledgeBase:  "ଦୁଃଖିତ, ମୋ ଜ୍ଞାନକୋଷରେ ଏହି ବିଷୟରେ ସୂଚନା ନାହିଁ।",
	},
}
