package rain

// Announcement image pools per command. One is chosen at random to accompany
// the announce line, matching the bot's long-standing behavior.
var (
	rainImages = []string{
		"http://disinfo.s3.amazonaws.com/wp-content/uploads/2013/12/make-it-rain-1jk6.jpg",
		"http://voice.instructure.com/Portals/166399/images/scrooge-mcduck-make-it-rain.jpeg",
		"http://cdn01.dailycaller.com/wp-content/uploads/2012/10/Big-Bird-Makin-It-Rain-e1349457102996.jpeg",
		"http://i.imgur.com/jSaI0pv.jpg",
		"http://i.imgur.com/0Rz84wK.gif",
	}

	wayneImages = []string{
		"http://a4.files.saymedia-content.com/image/upload/c_fill,g_face,h_300,q_80,w_300/MTE5NTU2MzE2NDIxMTk1Mjc1.jpg",
		"http://www.whale.to/c/9_23_09_wayne_newton_kabik-14-570.jpg",
		"http://www.aceshowbiz.com/images/wennpic/wayne-newton-2013-american-music-awards-01.jpg",
		"http://thestarsurgery.com/wp-content/uploads/2013/06/Wayne-Newton.jpg",
		"http://www.mtv.com/crop-images/2013/08/27/WayneNewton_cr_EthanMiller_2009.jpg",
	}

	blaineImages = []string{
		"http://cdn.images.express.co.uk/img/dynamic/79/590x/444280_1.jpg",
		"http://currentbuzz.my/Documents/Article/508176/TV%20street%20magician%20David%20Blaine_i2_cdnds_net.jpg",
		"http://i.dailymail.co.uk/i/pix/2012/10/08/article-2214386-15633B31000005DC-349_306x423.jpg",
		"http://i.telegraph.co.uk/multimedia/archive/01394/blaine_1394717c.jpg",
		"http://i.ytimg.com/vi/fqJ0GaVU344/hqdefault.jpg",
	}

	craneImages = []string{
		"http://upload.wikimedia.org/wikipedia/en/6/68/Frasier_Crane_Shrink_Wrap_radio_station_KACL.jpg",
		"http://0.media.dorkly.cvcdn.com/47/63/8525949c344ca18f060a73d22e4cafde-dr-frasier-crane.jpg",
		"http://rushthefence.com/content/images/2014/Mar/Morgan_Bateson.jpg",
		"https://38.media.tumblr.com/97d26f1f5c3979b5d0ca26a49490c946/tumblr_mk8hl1u5va1s2n8qho1_500.png",
		"http://snakkle.wpengine.netdna-cdn.com/wp-content/uploads/2012/09/kelsey-grammer-cheers-tv-1985-photo-GC.jpg",
	}

	reignImages = []string{
		"http://i.imgur.com/WOzIWAs.gif",
		"http://i.imgur.com/QlhuS09.gif",
		"http://i.imgur.com/8RC90ul.gif",
	}
)
