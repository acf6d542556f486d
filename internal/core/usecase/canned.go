package usecase

import "strings"

// GreetingResponse returns the assistant's localized smalltalk reply.
// Unsupported languages fall back to English.
func GreetingResponse(lang string) string {
	switch lang {
	case "hi":
		return "नमस्ते! मैं न्यायसाथी हूँ. भारतीय कानून से जुड़े प्रश्न पूछें — अनुच्छेद, धाराएँ, मामले या प्रक्रिया। " +
			"उदाहरण: 'अनुच्छेद 21 क्या है?', 'ग़ैरक़ानूनी हिरासत का उपाय?', या 'सीआरपीसी में ज़मानत प्रक्रिया'."
	case "bn":
		return "নমস্কার! আমি ন্যায়সাথী। ভারতীয় আইন নিয়ে প্রশ্ন করুন — অনুচ্ছেদ, ধারা, মামলা বা প্রক্রিয়া। " +
			"উদাহরণ: 'অনুচ্ছেদ ২১ কী?', 'অবৈধ আটক হলে প্রতিকার?', বা 'CrPC অনুযায়ী জামিনের প্রক্রিয়া'."
	case "ta":
		return "வணக்கம்! நான் ந்யாயஸாதி. இந்திய சட்டம் குறித்து கேளுங்கள் — அரசியல் சட்டப் பிரிவுகள், சட்டப் பிரிவுகள், வழக்குகள், நடைமுறை. " +
			"உதா: 'அருச்சு சட்டம் பிரிவு 21?', 'தவறான காவலில் நிவாரணம்?', 'CrPC இல் ஜாமின் நடைமுறை'."
	case "te":
		return "నమస్కారం! నేను న్యాయసాథి. భారతీయ చట్టాలపై ప్రశ్నలు అడగండి — ఆర్టికల్స్, సెక్షన్లు, కేసులు లేదా ప్రక్రియ. " +
			"ఉదా: 'ఆర్టికల్ 21 ఏమిటి?', 'అక్రమ నిర్బంధానికి పరిహారం?', లేదా 'CrPC లో బెయిల్ ప్రక్రియ'."
	case "mr":
		return "नमस्कार! मी न्यायसाथी. भारतीय कायद्यासंबंधी प्रश्न विचारा — कलमे, तरतुदी, खटले किंवा प्रक्रिया. " +
			"उदा: 'कलम 21 काय आहे?', 'बेकायदेशीर ताब्यास उपाय?', किंवा 'CrPC मधील जामीन प्रक्रिया'."
	case "kn":
		return "ನಮಸ್ಕಾರ! ನಾನು ನ್ಯಾಯಸಾಥಿ. ಭಾರತೀಯ ಕಾನೂನಿನ ಬಗ್ಗೆ ಕೇಳಿ — ಸಂವಿಧಾನ ವಿಧಿಗಳು, ಸೆಕ್ಷನ್‌ಗಳು, ಪ್ರಕರಣಗಳು, ಕ್ರಮಗಳು. " +
			"ಉದಾ: 'ಆರ್ಟಿಕಲ್ 21 ಎಂದರೆ?', 'ಬೇಧಕ ಬಂಧನಕ್ಕೆ ಪರಿಹಾರ?', ಅಥವಾ 'CrPC ನಲ್ಲಿ ಜಾಮೀನು ಪ್ರಕ್ರಿಯೆ'."
	case "ml":
		return "നമസ്കാരം! ഞാൻ നിയമസാഥി. ഇന്ത്യൻ നിയമത്തെക്കുറിച്ച് ചോദിക്കൂ — അനുച്ഛേദങ്ങൾ, വകുപ്പ്, കേസുകൾ, നടപടിക്രമം. " +
			"ഉദാ: 'അനുച്ഛേദം 21 എന്താണ്?', 'അന്യായ തടങ്കലിന് പരിഹാരം?', 'CrPC പ്രകാരം ജാമ്യാപേക്ഷ പ്രക്രിയ'."
	case "gu":
		return "નમસ્તે! હું ન્યાયસાથી. ભારતીય કાયદા વિશે પૂછો — કલમો, વિભાગો, કેસો કે પ્રક્રિયા. " +
			"ઉદાહરણ: 'કલમ 21 શું છે?', 'ગેરકાયદે કસ્ટડીમાં ઉપાય?', અથવા 'CrPCમાં જામીન પ્રક્રિયા'."
	case "pa":
		return "ਸਤ ਸ੍ਰੀ ਅਕਾਲ! ਮੈਂ ਨਿਆਂਸਾਥੀ ਹਾਂ। ਭਾਰਤੀ ਕਾਨੂੰਨ ਬਾਰੇ ਪੁੱਛੋ — ਆਰਟਿਕਲ, ਧਾਰਾਵਾਂ, ਮਾਮਲੇ, ਜ਼ਰੀਏ। " +
			"ਉਦਾਹਰਨ: 'ਆਰਟਿਕਲ 21 ਕੀ ਹੈ?', 'ਗੈਰਕਾਨੂੰਨੀ ਹਿਰਾਸਤ ਦਾ ਉਪਚਾਰ?', ਜਾਂ 'CrPC ਵਿਚ ਜ਼ਮਾਨਤ ਪ੍ਰਕਿਰਿਆ'."
	case "ur":
		return "سلام! میں نیاے ساتھی ہوں۔ بھارتی قانون سے متعلق سوال پوچھیں — دفعات، شقیں، مقدمات یا طریقہ کار۔ " +
			"مثال: 'آرٹیکل 21 کیا ہے؟'، 'غیر قانونی حراست کا علاج؟' یا 'CrPC میں ضمانت کا طریقہ'."
	case "or":
		return "ନମସ୍କାର! ମୁଁ ନ୍ୟାୟସାଥୀ। ଭାରତୀୟ କାନୁନ ସମ୍ବନ୍ଧୀୟ ପ୍ରଶ୍ନ ପଚାରନ୍ତୁ — ଅନୁଛେଦ, ଧାରା, ମାମଲା, ପ୍ରକ୍ରିୟା। " +
			"ଉଦାହରଣ: 'ଅନୁଛେଦ 21 କ'ଣ?', 'ବେଆଇନ ହିରାସତରେ ଉପାୟ?', କିମ୍ବା 'CrPC ରେ ଜାମିନ ପ୍ରକ୍ରିୟା'."
	default:
		return "Hello! I’m NyaySaathi. Ask me about Indian law – articles, sections, cases, or procedures. " +
			"For example: ‘What is Article 21?’, ‘Remedy for wrongful detention?’, or ‘Bail process under CrPC’."
	}
}

// GuidanceMessage is the localized no-answer fallback pointing to official
// sources. transient selects the wording for temporary provider failures;
// only the English variant differs.
func GuidanceMessage(lang string, transient bool) string {
	switch lang {
	case "hi":
		return "क्षमा करें, अभी आवश्यक जानकारी उपलब्ध नहीं है। आधिकारिक स्रोत देखें:\n" +
			"- India Code: https://www.indiacode.nic.in/\n" +
			"- विधि विभाग (Legislative Dept.): https://legislative.gov.in"
	case "bn":
		return "দুঃখিত, প্রয়োজনীয় তথ্য এই মুহূর্তে নেই। সরকারি উৎস দেখুন:\n" +
			"- India Code: https://www.indiacode.nic.in/\n" +
			"- আইন বিভাগ (Legislative Dept.): https://legislative.gov.in"
	case "ta":
		return "மன்னிக்கவும், இப்போது தேவையான தகவல் இல்லை. அதிகாரப்பூர்வ மூலங்களைப் பார்க்கவும்:\n" +
			"- India Code: https://www.indiacode.nic.in/\n" +
			"- Legislative Dept.: https://legislative.gov.in"
	case "te":
		return "క్షమించండి, ప్రస్తుతం అవసరమైన సమాచారం లేదు. అధికారిక వనరులు చూడండి:\n" +
			"- India Code: https://www.indiacode.nic.in/\n" +
			"- Legislative Dept.: https://legislative.gov.in"
	case "mr":
		return "क्षमस्व, आवश्यक माहिती सध्या उपलब्ध नाही. अधिकृत स्रोत पहा:\n" +
			"- India Code: https://www.indiacode.nic.in/\n" +
			"- विधी विभाग (Legislative Dept.): https://legislative.gov.in"
	case "kn":
		return "ಕ್ಷಮಿಸಿ, ಅಗತ್ಯ ಮಾಹಿತಿಯು ಈಗ ಲಭ್ಯವಿಲ್ಲ. ಅಧಿಕೃತ ಮೂಲಗಳನ್ನು ನೋಡಿ:\n" +
			"- India Code: https://www.indiacode.nic.in/\n" +
			"- Legislative Dept.: https://legislative.gov.in"
	case "ml":
		return "ക്ഷമിക്കണം, ആവശ്യമായ വിവരം ഇപ്പോൾ ലഭ്യമല്ല. ഔദ്യോഗിക ഉറവിടങ്ങൾ കാണുക:\n" +
			"- India Code: https://www.indiacode.nic.in/\n" +
			"- Legislative Dept.: https://legislative.gov.in"
	case "gu":
		return "માફ કરશો, જરૂરી માહિતી હાલ ઉપલબ્ધ નથી. સત્તાવાર સ્ત્રોત જુઓ:\n" +
			"- India Code: https://www.indiacode.nic.in/\n" +
			"- Legislative Dept.: https://legislative.gov.in"
	case "pa":
		return "ਮਾਫ ਕਰਨਾ, ਲੋੜੀਂਦੀ ਜਾਣਕਾਰੀ ਇਸ ਸਮੇਂ ਉਪਲਬਧ ਨਹੀਂ। ਸਰਕਾਰੀ ਸਰੋਤ ਵੇਖੋ:\n" +
			"- India Code: https://www.indiacode.nic.in/\n" +
			"- Legislative Dept.: https://legislative.gov.in"
	case "ur":
		return "معاف کیجیے، مطلوبہ معلومات فی الحال دستیاب نہیں۔ سرکاری ذرائع دیکھیں:\n" +
			"- India Code: https://www.indiacode.nic.in/\n" +
			"- Legislative Dept.: https://legislative.gov.in"
	case "or":
		return "ମାପ କରନ୍ତୁ, ଆବଶ୍ୟକ ତଥ୍ୟ ବର୍ତ୍ତମାନ ଉପଲବ୍ଧ ନାହିଁ। ଅଧିକୃତ ସ୍ରୋତ ଦେଖନ୍ତୁ:\n" +
			"- India Code: https://www.indiacode.nic.in/\n" +
			"- Legislative Dept.: https://legislative.gov.in"
	}
	base := "Sorry, I don't have the relevant information for your query right now. " +
		"Please refer to official Government of India legal resources: \n" +
		"- India Code: https://www.indiacode.nic.in/ (official repository of Central Acts)\n" +
		"- Legislative Department: https://legislative.gov.in (includes the Constitution of India)"
	if transient {
		base = strings.Replace(base, "I don't have the relevant information", "I can't complete this", 1)
	}
	return base
}

// FundamentalRightsAnswer enumerates Part III deterministically. Hindi,
// Punjabi, and Bengali carry full translations; other languages get the
// English enumeration.
func FundamentalRightsAnswer(lang string) string {
	switch lang {
	case "hi":
		return strings.Join([]string{
			"मौलिक अधिकारों की पूर्ण सूची (भाग III, अनुच्छेद 12–35):",
			"- समानता का अधिकार — अनुच्छेद 14–18",
			"- स्वतंत्रता का अधिकार — अनुच्छेद 19–22 (21 और 21A सहित)",
			"- शोषण के विरुद्ध अधिकार — अनुच्छेद 23–24",
			"- धर्म की स्वतंत्रता का अधिकार — अनुच्छेद 25–28",
			"- सांस्कृतिक और शैक्षिक अधिकार — अनुच्छेद 29–30",
			"- संवैधानिक उपचारों का अधिकार — अनुच्छेद 32",
			"",
			"कानूनी आधार: भारत का संविधान, भाग III (अनुच्छेद 14–18, 19–22 (21 व 21A सहित), 23–24, 25–28, 29–30, 32)",
		}, "\n")
	case "pa":
		return strings.Join([]string{
			"ਮੂਲ ਅਧਿਕਾਰਾਂ ਦੀ ਪੂਰੀ ਸੂਚੀ (ਭਾਗ III, ਅਨੁਛੇਦ 12–35):",
			"- ਬਰਾਬਰੀ ਦਾ ਅਧਿਕਾਰ — ਅਨੁਛੇਦ 14–18",
			"- ਆਜ਼ਾਦੀ ਦਾ ਅਧਿਕਾਰ — ਅਨੁਛੇਦ 19–22 (21 ਅਤੇ 21A ਸਮੇਤ)",
			"- ਸ਼ੋਸ਼ਣ ਖ਼ਿਲਾਫ਼ ਅਧਿਕਾਰ — ਅਨੁਛੇਦ 23–24",
			"- ਧਰਮ ਦੀ ਆਜ਼ਾਦੀ ਦਾ ਅਧਿਕਾਰ — ਅਨੁਛੇਦ 25–28",
			"- ਸੱਭਿਆਚਾਰਕ ਅਤੇ ਸ਼ਿਕਸ਼ਾ ਸੰਬੰਧੀ ਅਧਿਕਾਰ — ਅਨੁਛੇਦ 29–30",
			"- ਸੰਵਿਧਾਨਕ ਉਪਚਾਰਾਂ ਦਾ ਅਧਿਕਾਰ — ਅਨੁਛੇਦ 32",
			"",
			"ਕਾਨੂੰਨੀ ਆਧਾਰ: ਭਾਰਤ ਦਾ ਸੰਵਿਧਾਨ, ਭਾਗ III (ਅਨੁਛੇਦ 14–18, 19–22 (21 ਅਤੇ 21A ਸਮੇਤ), 23–24, 25–28, 29–30, 32)",
		}, "\n")
	case "bn":
		return strings.Join([]string{
			"মৌলিক অধিকারের সম্পূর্ণ তালিকা (পার্ট III, অনুচ্ছেদ ১২–৩৫):",
			"- সমতার অধিকার — অনুচ্ছেদ ১৪–১৮",
			"- স্বাধীনতার অধিকার — অনুচ্ছেদ ১৯–২২ (২১ ও ২১A সহ)",
			"- শোষণবিরোধী অধিকার — অনুচ্ছেদ ২৩–২৪",
			"- ধর্মীয় স্বাধীনতার অধিকার — অনুচ্ছেদ ২৫–২৮",
			"- সাংস্কৃতিক ও শিক্ষাগত অধিকার — অনুচ্ছেদ ২৯–৩০",
			"- সাংবিধানিক প্রতিকার পাওয়ার অধিকার — অনুচ্ছেদ ৩২",
			"",
			"আইনি ভিত্তি: ভারতের সংবিধান, পার্ট III (অনুচ্ছেদ ১৪–১৮, ১৯–২২ (২১ ও ২১A সহ), ২৩–২৪, ২৫–২৮, ২৯–৩০, ৩২)",
		}, "\n")
	}
	return strings.Join([]string{
		"A complete list of Fundamental Rights under the Constitution of India (Part III, Arts 12–35):",
		"- Right to Equality — Articles 14–18",
		"- Right to Freedom — Articles 19–22 (includes 21 and 21A)",
		"- Right against Exploitation — Articles 23–24",
		"- Right to Freedom of Religion — Articles 25–28",
		"- Cultural and Educational Rights — Articles 29–30",
		"- Right to Constitutional Remedies — Article 32",
		"",
		"Legal basis: Constitution of India, Part III (Articles 14–18, 19–22 incl. 21 & 21A, 23–24, 25–28, 29–30, 32)",
	}, "\n")
}

// RightToEqualityAnswer is the deterministic Articles 14 to 18 digest.
// English only; localized requests go through the generation path instead.
func RightToEqualityAnswer() string {
	return strings.Join([]string{
		"Right to Equality — key points (Articles 14–18):",
		"- Article 14: Equality before law and equal protection of laws; no arbitrariness. Reasonable classification must have intelligible differentia and rational nexus to the objective.",
		"- Article 15: No discrimination by the State on religion, race, caste, sex, place of birth; access to public places protected (15(2)). Special provisions permitted: 15(3) women/children; 15(4), 15(5) SEBC/SC/ST (including admissions; 15(5) excludes minority institutions); 15(6) EWS.",
		"- Article 16: Equality of opportunity in public employment; no discrimination on similar grounds. Specific clauses: 16(3) residence requirements by Parliament; 16(4) reservation for backward classes; 16(4A) promotion reservation for SC/ST (subject to conditions); 16(4B) carry‑forward; 16(5) posts in religious institutions; 16(6) EWS.",
		"- Article 17: Abolition of ‘untouchability’ and its practice in any form; offences punishable (e.g., PCR Act 1955; SC/ST (Prevention of Atrocities) Act 1989).",
		"- Article 18: Abolition of titles (except military/academic distinctions); restrictions on accepting foreign titles/honours, especially for public office holders.",
		"",
		"Legal basis: Constitution of India — Articles 14, 15 (incl. 15(3), 15(4), 15(5), 15(6)), 16 (incl. 16(3), 16(4), 16(4A), 16(4B), 16(5), 16(6)), 17, 18.",
	}, "\n")
}
