package wavelet

// coifletDecLo holds the analysis low-pass filters of coif1..coif6 (length
// 6N). The coefficients solve the orthonormality conditions together with
// 2N vanishing wavelet moments and 2N-1 vanishing scaling moments.
var coifletDecLo = [maxCoiflet][]float64{
	{
		-0.015655728135791993, -0.07273261951252645, 0.3848648468648577,
		0.8525720202116004, 0.33789766245748176, -0.07273261951252645,
	},
	{
		-0.000720549445520347, -0.001823208870911032, 0.005611434819368834,
		0.02368017194684777, -0.059434418646431085, -0.07648859907828076,
		0.41700518442323903, 0.8127236354494135, 0.38611006682276283,
		-0.0673725547237256, -0.04146493678687178, 0.01638733646320364,
	},
	{
		-3.4599773197272774e-05, -7.0983302506379e-05, 0.0004662169598204029,
		0.0011175187708306303, -0.002574517688136797, -0.009007976136730624,
		0.015880544863669452, 0.03455502757329773, -0.08230192710629981,
		-0.07179982161915484, 0.42848347637737, 0.7937772226260872,
		0.4051769024091182, -0.06112339000297254, -0.06577191128146936,
		0.023452696142077165, 0.0077825964256727454, -0.0037935128643808015,
	},
	{
		-1.7849909144933466e-06, -3.2596479400307506e-06, 3.1229861599195265e-05,
		6.233885431278718e-05, -0.0002599743371222568, -0.0005890202246332164,
		0.0012665610789256603, 0.003751434697146086, -0.0056582838001308835,
		-0.015211728187697211, 0.025082253337949608, 0.03933442260558915,
		-0.09622042453595264, -0.06662747236681715, 0.43438603311435653,
		0.7822389344242826, 0.41530842700068227, -0.05607731960356926,
		-0.08126671024919373, 0.026682304669604834, 0.016068947131575025,
		-0.00734616793626805, -0.0016294924252267858, 0.000892313902537003,
	},
	{
		-9.604010112767892e-08, -1.6237995172048335e-07, 2.0612203985788783e-06,
		3.7007277113394796e-06, -2.1270221672515614e-05, -4.12198619242655e-05,
		0.00014035632812373243, 0.00030185794166824473, -0.0006375589261258812,
		-0.0016616273039298788, 0.0024315754425382886, 0.006761520220620417,
		-0.009159507338676163, -0.019758391600965465, 0.03267479946705735,
		0.041287530472117834, -0.10556315130733723, -0.06203775157498195,
		0.4379823066591633, 0.7742936228603274, 0.42157126673075435,
		-0.05204667025355476, -0.09192158806008609, 0.028169744270532353,
		0.023408322118927783, -0.010131584846900275, -0.004159312627578639,
		0.0021782943778456947, 0.0003585777411617577, -0.000212081862067494,
	},
	{
		-5.309088417196893e-09, -8.487143396262437e-09, 1.3503244993561446e-07,
		2.255997852816182e-07, -1.6596192951024209e-06, -2.924385559757523e-06,
		1.313985135402144e-05, 2.473655932872323e-05, -7.528004306935964e-05,
		-0.0001545771992797995, 0.00032522235901024076, 0.0007698547307507267,
		-0.0011574350134273346, -0.003073939507208559, 0.0038576582705936867,
		0.009591090175904052, -0.01265006790873235, -0.022950153279849065,
		0.03888132625151076, 0.04185249067613627, -0.11226080796481723,
		-0.0581089179726148, 0.4404011911268528, 0.7684032575798924,
		0.4258195450128385, -0.04876407217567387, -0.09967300204601175,
		0.02878611434666557, 0.02964577289132384, -0.012231577790037912,
		-0.007029406391002729, 0.003539019871540998, 0.001091624712325903,
		-0.0006246130439256835, -8.11700262678484e-05, 5.0775487836340565e-05,
	},
}
